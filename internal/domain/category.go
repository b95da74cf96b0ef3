package domain

import "time"

// Category is an article category a user can subscribe to via their
// feed preferences.
type Category struct {
	CategoryID string    `json:"id" dynamodbav:"category_id"`
	Name       string    `json:"name" dynamodbav:"name"`
	CreatedAt  time.Time `json:"createdAt" dynamodbav:"created_at"`
}

type CreateCategoryRequest struct {
	Name string `json:"name" validate:"required"`
}
