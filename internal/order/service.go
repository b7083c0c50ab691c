package order

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"marketbridge/internal/address"
	"marketbridge/internal/apperror"
	"marketbridge/internal/coupon"
	"marketbridge/internal/logger"
	"marketbridge/internal/member"
	"marketbridge/internal/product"
	"marketbridge/internal/utils"
)

type Service interface {
	// GetCheckout returns the member's default shipping address and point
	// balance for the checkout screen.
	GetCheckout(ctx context.Context) (*CheckoutDto, error)

	// StageCheckout persists the checkout lines ahead of payment
	// confirmation.
	StageCheckout(ctx context.Context, input CheckoutInput) error

	// Create runs the order-creation workflow: resolve member and address,
	// sum coupon discounts, build the aggregate, persist order and details.
	Create(ctx context.Context, input CreateOrderInput) (*Order, error)

	GetDetail(ctx context.Context, orderNo string) (*Order, error)

	// CancelReturn applies the supplied status and reason to every detail,
	// restocks the products, and returns consumed coupons.
	CancelReturn(ctx context.Context, orderNo, reason string, statusCode StatusCode) error
}

type service struct {
	repo        Repository
	memberRepo  member.Repository
	addressRepo address.Repository
	productRepo product.Repository
	couponRepo  coupon.Repository
}

func NewService(
	repo Repository,
	memberRepo member.Repository,
	addressRepo address.Repository,
	productRepo product.Repository,
	couponRepo coupon.Repository,
) Service {
	return &service{
		repo:        repo,
		memberRepo:  memberRepo,
		addressRepo: addressRepo,
		productRepo: productRepo,
		couponRepo:  couponRepo,
	}
}

func (s *service) GetCheckout(ctx context.Context) (*CheckoutDto, error) {
	memberID, ok := utils.GetMemberIDFromContext(ctx)
	if !ok {
		return nil, ErrUnauthenticated
	}

	log := logger.FromCtx(ctx).With(
		zap.String("service", "Order"),
		zap.String("method", "GetCheckout"),
	)

	m, err := s.memberRepo.GetWithPointAndAddresses(ctx, memberID)
	if err != nil {
		if errors.Is(err, member.ErrMemberNotFound) {
			return nil, apperror.NotFound("member", memberID)
		}
		log.Error("failed to load member", zap.Error(err))
		return nil, err
	}

	defaultAddr, err := filterDefaultAddress(m.Addresses)
	if err != nil {
		log.Warn("no default address registered")
		return nil, err
	}

	var balance int64
	if m.Point != nil {
		balance = m.Point.Balance
	}

	return &CheckoutDto{
		AddressValue: defaultAddr.Value(),
		PointBalance: balance,
	}, nil
}

// filterDefaultAddress picks the address flagged as default. With several
// flagged rows the first one wins; that ordering is implementation-defined.
func filterDefaultAddress(addresses []*address.Address) (*address.Address, error) {
	for _, a := range addresses {
		if a.IsDefault {
			return a, nil
		}
	}
	return nil, apperror.New(
		apperror.CodeShippingAddressNotRegistered,
		"shipping address not registered",
	)
}

func (s *service) StageCheckout(ctx context.Context, input CheckoutInput) error {
	if _, ok := utils.GetMemberIDFromContext(ctx); !ok {
		return ErrUnauthenticated
	}

	temps := make([]*OrderTemp, 0, len(input.ProductValues))
	for _, pv := range input.ProductValues {
		temps = append(temps, &OrderTemp{
			OrderNo:      input.OrderNo,
			OrderName:    input.OrderName,
			AddressID:    input.AddressID,
			Amount:       input.Amount,
			RewardType:   input.RewardType,
			ProductValue: pv,
		})
	}

	return s.repo.SaveOrderTemps(ctx, temps)
}

func (s *service) Create(ctx context.Context, input CreateOrderInput) (*Order, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("service", "Order"),
		zap.String("method", "Create"),
		zap.String("order_no", input.OrderNo),
		zap.Int("line_count", len(input.ProductValues)),
	)

	log.Info("create order started")

	// 1. Resolve member and address
	if _, err := s.memberRepo.GetByID(ctx, input.MemberID); err != nil {
		if errors.Is(err, member.ErrMemberNotFound) {
			return nil, apperror.NotFound("member", input.MemberID)
		}
		return nil, err
	}

	if _, err := s.addressRepo.GetByID(ctx, input.AddressID); err != nil {
		if errors.Is(err, address.ErrAddressNotFound) {
			return nil, apperror.NotFound("address", input.AddressID)
		}
		return nil, err
	}

	// 2. Sum coupon discounts over every applied coupon. Repeated coupon
	// ids are each counted; there is no deduplication.
	totalUsedCouponPrice, err := s.totalCouponPrice(ctx, input.ProductValues)
	if err != nil {
		return nil, err
	}

	if input.RealOrderPrice != input.TotalOrderPrice-totalUsedCouponPrice-input.UsedPoint {
		log.Warn("real price mismatch",
			zap.Int64("total", input.TotalOrderPrice),
			zap.Int64("real", input.RealOrderPrice),
			zap.Int64("coupon_total", totalUsedCouponPrice),
			zap.Int64("used_point", input.UsedPoint),
		)
		return nil, apperror.InvalidInput("real price does not match totals")
	}

	// 3. Build the aggregate
	o := &Order{
		MemberID:             input.MemberID,
		AddressID:            input.AddressID,
		OrderName:            input.OrderName,
		OrderNo:              input.OrderNo,
		TotalPrice:           input.TotalOrderPrice,
		RealPrice:            input.RealOrderPrice,
		TotalUsedCouponPrice: totalUsedCouponPrice,
		UsedPoint:            input.UsedPoint,
		StatusCode:           StatusOrderInit,
	}

	// 4. Build one detail per purchase entry. A nil coupon id means no
	// coupon applied, not an error. Unit price is the product's price at
	// workflow time.
	for _, pv := range input.ProductValues {
		p, err := s.productRepo.GetByID(ctx, pv.ProductID)
		if err != nil {
			if errors.Is(err, product.ErrProductNotFound) {
				return nil, apperror.NotFound("product", pv.ProductID)
			}
			return nil, err
		}

		d := &OrderDetail{
			ProductID:  pv.ProductID,
			Quantity:   pv.Quantity,
			Price:      p.Price,
			StatusCode: StatusOrderInit,
		}

		if pv.CouponID != nil {
			c, err := s.couponRepo.GetByID(ctx, *pv.CouponID)
			if err != nil {
				if errors.Is(err, coupon.ErrCouponNotFound) {
					return nil, apperror.NotFound("coupon", *pv.CouponID)
				}
				return nil, err
			}
			d.CouponID = &c.ID
			d.CouponUsed = true
			d.Coupon = c
		}

		o.AddDetail(d)
	}

	// 5. Persist order and detail batch, all-or-nothing
	if err := s.repo.CreateOrder(ctx, o); err != nil {
		log.Error("failed to persist order", zap.Error(err))
		return nil, err
	}

	log.Info("order created",
		zap.Int64("order_id", o.ID),
		zap.Int64("total_used_coupon_price", o.TotalUsedCouponPrice),
	)

	return o, nil
}

func (s *service) totalCouponPrice(ctx context.Context, values []ProductValue) (int64, error) {
	ids := make([]int64, 0, len(values))
	for _, pv := range values {
		if pv.CouponID != nil {
			ids = append(ids, *pv.CouponID)
		}
	}

	coupons, err := s.couponRepo.FindAllByIDs(ctx, ids)
	if err != nil {
		return 0, err
	}

	var total int64
	for _, c := range coupons {
		total += c.Price
	}

	return total, nil
}

func (s *service) GetDetail(ctx context.Context, orderNo string) (*Order, error) {
	o, err := s.repo.GetByOrderNoWithDetails(ctx, orderNo)
	if err != nil {
		if errors.Is(err, ErrOrderNotFound) {
			return nil, apperror.NotFound("order", orderNo)
		}
		return nil, err
	}

	for _, d := range o.Details {
		d.Product, err = s.productRepo.GetByID(ctx, d.ProductID)
		if err != nil {
			return nil, err
		}
	}

	return o, nil
}

func (s *service) CancelReturn(
	ctx context.Context,
	orderNo, reason string,
	statusCode StatusCode,
) error {

	log := logger.FromCtx(ctx).With(
		zap.String("service", "Order"),
		zap.String("method", "CancelReturn"),
		zap.String("order_no", orderNo),
		zap.String("status_code", string(statusCode)),
	)

	log.Info("cancel/return started")

	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		return err
	}

	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	o, err := s.repo.GetByOrderNoWithDetailsTx(ctx, tx, orderNo)
	if err != nil {
		if errors.Is(err, ErrOrderNotFound) {
			return apperror.NotFound("order", orderNo)
		}
		return err
	}

	// Which details still hold a consumed coupon, before the aggregate
	// mutates them.
	type couponReturn struct {
		couponID int64
		quantity int64
	}
	var returns []couponReturn
	for _, d := range o.Details {
		if d.CouponID != nil && d.CouponUsed {
			returns = append(returns, couponReturn{*d.CouponID, d.Quantity})
		}
	}

	// The status code is applied as supplied; there is no transition guard.
	o.CancelReturn(reason, statusCode)
	o.ReturnCoupon()
	o.ChangeStatusCode(statusCode)

	for _, d := range o.Details {
		if err := s.repo.UpdateDetailTx(ctx, tx, d); err != nil {
			log.Error("failed to update detail", zap.Int64("detail_id", d.ID), zap.Error(err))
			return err
		}

		// Restock the cancelled line.
		if err := s.productRepo.IncreaseStock(ctx, tx, d.ProductID, d.Quantity); err != nil {
			log.Error("failed to restock product", zap.Int64("product_id", d.ProductID), zap.Error(err))
			return err
		}
	}

	for _, cr := range returns {
		if err := s.couponRepo.IncreaseCount(ctx, tx, cr.couponID, 1); err != nil {
			log.Error("failed to return coupon", zap.Int64("coupon_id", cr.couponID), zap.Error(err))
			return err
		}
	}

	if err := s.repo.UpdateStatusTx(ctx, tx, o.ID, statusCode); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	committed = true
	log.Info("cancel/return completed", zap.Int64("order_id", o.ID))

	return nil
}
