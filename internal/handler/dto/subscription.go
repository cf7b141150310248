package dto

import "github.com/subtrack/subtrack/internal/model"

// CreateSubscriptionRequest represents the request body for creating a
// subscription. The owner comes from the URL path, not the body.
type CreateSubscriptionRequest struct {
	Name string `json:"name"`
}

// SubscriptionResponse represents a subscription in API responses.
type SubscriptionResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	User int64  `json:"user"`
}

// ToSubscriptionResponse converts a Subscription model to its DTO.
func ToSubscriptionResponse(sub *model.Subscription) *SubscriptionResponse {
	return &SubscriptionResponse{
		ID:   sub.ID,
		Name: sub.Name,
		User: sub.UserID,
	}
}

// ToSubscriptionListResponse converts a slice of subscriptions.
// It always returns a non-nil slice so empty lists render as [].
func ToSubscriptionListResponse(subs []*model.Subscription) []*SubscriptionResponse {
	out := make([]*SubscriptionResponse, 0, len(subs))
	for _, sub := range subs {
		out = append(out, ToSubscriptionResponse(sub))
	}
	return out
}
