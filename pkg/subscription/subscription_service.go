package subscription

import (
	"GIVD-Backend/domain"
	"GIVD-Backend/entities"
	"GIVD-Backend/internal/utils"
	"GIVD-Backend/pkg/user"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/midtrans/midtrans-go"
	"github.com/midtrans/midtrans-go/snap"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type (
	SubscriptionService interface {
		GetPlans(ctx context.Context) ([]domain.PlanResponse, error)
		GetUserSubscription(ctx context.Context, userID string) (domain.SubscriptionResponse, error)
		Subscribe(ctx context.Context, req domain.SubscribeRequest, userID string) (domain.SubscribeResponse, error)
		HandlePaymentWebhook(ctx context.Context, orderID string, transactionStatus string, fraudStatus string) error
	}

	subscriptionService struct {
		subscriptionRepository SubscriptionRepository
		userRepository         user.UserRepository
		snapClient             snap.Client
	}
)

func NewSubscriptionService(subscriptionRepository SubscriptionRepository, userRepository user.UserRepository) SubscriptionService {
	utils.LoadConfig()

	var client snap.Client
	client.New(utils.GetConfig("SERVER_KEY"), midtransEnv(utils.GetConfig("IsProd")))

	return &subscriptionService{
		subscriptionRepository: subscriptionRepository,
		userRepository:         userRepository,
		snapClient:             client,
	}
}

func midtransEnv(isProd string) midtrans.EnvironmentType {
	if isProd == "true" {
		return midtrans.Production
	}
	return midtrans.Sandbox
}

func (s *subscriptionService) GetPlans(ctx context.Context) ([]domain.PlanResponse, error) {
	plans, err := s.subscriptionRepository.GetPlans(ctx)
	if err != nil {
		return nil, err
	}

	var response []domain.PlanResponse
	for _, plan := range plans {
		response = append(response, domain.PlanResponse{
			ID:       plan.ID.String(),
			Name:     plan.Name,
			Price:    plan.Price,
			Features: splitFeatures(plan.Features),
		})
	}
	return response, nil
}

func splitFeatures(features string) []string {
	if features == "" {
		return nil
	}
	parts := strings.Split(features, ";")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func (s *subscriptionService) GetUserSubscription(ctx context.Context, userID string) (domain.SubscriptionResponse, error) {
	sub, err := s.subscriptionRepository.GetUserSubscription(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.SubscriptionResponse{}, domain.ErrSubscriptionNotFound
		}
		return domain.SubscriptionResponse{}, err
	}

	response := domain.SubscriptionResponse{
		ID:     sub.ID.String(),
		PlanID: sub.PlanID.String(),
		Status: sub.Status,
	}
	if sub.Plan != nil {
		response.PlanName = sub.Plan.Name
		response.Price = sub.Plan.Price
	}
	return response, nil
}

// Subscribe activates free plans immediately; paid plans are created Pending
// with a Snap checkout link and flipped by the payment webhook.
func (s *subscriptionService) Subscribe(ctx context.Context, req domain.SubscribeRequest, userID string) (domain.SubscribeResponse, error) {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return domain.SubscribeResponse{}, domain.ErrParseUUID
	}

	plan, err := s.subscriptionRepository.GetPlanByID(ctx, req.PlanID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.SubscribeResponse{}, domain.ErrPlanNotFound
		}
		return domain.SubscribeResponse{}, err
	}

	if existing, err := s.subscriptionRepository.GetUserSubscription(ctx, userID); err == nil {
		if existing.Status == domain.SubscriptionStatusActive && existing.PlanID == plan.ID {
			return domain.SubscribeResponse{}, domain.ErrAlreadySubscribed
		}
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.SubscribeResponse{}, err
	}

	sub := &entities.Subscription{
		ID:     uuid.New(),
		UserID: userUUID,
		PlanID: plan.ID,
	}

	if plan.Price == 0 {
		sub.Status = domain.SubscriptionStatusActive
		if err := s.subscriptionRepository.CreateSubscription(ctx, sub); err != nil {
			return domain.SubscribeResponse{}, err
		}
		return domain.SubscribeResponse{
			SubscriptionID: sub.ID.String(),
			Status:         sub.Status,
		}, nil
	}

	account, err := s.userRepository.GetUserByID(ctx, userID)
	if err != nil {
		return domain.SubscribeResponse{}, err
	}

	sub.Status = domain.SubscriptionStatusPending
	sub.OrderID = fmt.Sprintf("givd-sub-%s", sub.ID.String())
	if err := s.subscriptionRepository.CreateSubscription(ctx, sub); err != nil {
		return domain.SubscribeResponse{}, err
	}

	snapReq := &snap.Request{
		TransactionDetails: midtrans.TransactionDetails{
			OrderID:  sub.OrderID,
			GrossAmt: int64(plan.Price * 100),
		},
		CustomerDetail: &midtrans.CustomerDetails{
			Email: account.Email,
			FName: account.Name,
		},
	}

	snapResp, snapErr := s.snapClient.CreateTransaction(snapReq)
	if snapErr != nil {
		logrus.WithError(snapErr).WithField("order_id", sub.OrderID).Error("snap transaction failed")
		return domain.SubscribeResponse{}, domain.ErrPaymentFailed
	}

	return domain.SubscribeResponse{
		SubscriptionID: sub.ID.String(),
		Status:         sub.Status,
		PaymentToken:   snapResp.Token,
		RedirectURL:    snapResp.RedirectURL,
	}, nil
}

func (s *subscriptionService) HandlePaymentWebhook(ctx context.Context, orderID string, transactionStatus string, fraudStatus string) error {
	sub, err := s.subscriptionRepository.GetSubscriptionByOrderID(ctx, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrSubscriptionNotFound
		}
		return err
	}

	switch transactionStatus {
	case "capture":
		if fraudStatus == "accept" {
			sub.Status = domain.SubscriptionStatusActive
		}
	case "settlement":
		sub.Status = domain.SubscriptionStatusActive
	case "deny", "cancel", "expire":
		sub.Status = domain.SubscriptionStatusCancelled
	default:
		return nil
	}

	return s.subscriptionRepository.UpdateSubscription(ctx, sub)
}
