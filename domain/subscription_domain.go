package domain

import (
	"errors"
)

var (
	MessageSuccessGetPlans        = "plans retrieved successfully"
	MessageSuccessGetSubscription = "subscription retrieved successfully"
	MessageSuccessSubscribe       = "subscription created successfully"

	MessageFailedGetPlans        = "failed to retrieve plans"
	MessageFailedGetSubscription = "failed to retrieve subscription"
	MessageFailedSubscribe       = "failed to create subscription"
	MessageFailedWebhook         = "failed to process payment notification"

	ErrPlanNotFound         = errors.New("plan not found")
	ErrSubscriptionNotFound = errors.New("subscription not found")
	ErrAlreadySubscribed    = errors.New("user already has an active subscription")
	ErrPaymentFailed        = errors.New("payment processing failed")
)

const (
	SubscriptionStatusPending   = "Pending"
	SubscriptionStatusActive    = "Active"
	SubscriptionStatusTrial     = "Trial"
	SubscriptionStatusCancelled = "Cancelled"
)

type (
	PlanResponse struct {
		ID       string   `json:"id"`
		Name     string   `json:"name"`
		Price    float64  `json:"price"`
		Features []string `json:"features"`
	}

	SubscribeRequest struct {
		PlanID string `json:"plan_id" validate:"required,uuid"`
	}

	SubscribeResponse struct {
		SubscriptionID string `json:"subscription_id"`
		Status         string `json:"status"`
		PaymentToken   string `json:"payment_token,omitempty"`
		RedirectURL    string `json:"redirect_url,omitempty"`
	}

	SubscriptionResponse struct {
		ID       string  `json:"id"`
		PlanID   string  `json:"plan_id"`
		PlanName string  `json:"plan_name"`
		Price    float64 `json:"price"`
		Status   string  `json:"status"`
	}
)
