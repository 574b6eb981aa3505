// Package models - Product thuộc domain Product.
package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Product là sản phẩm bán trên ứng dụng
type Product struct {
	ID          primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	Name        string             `json:"name" bson:"name" index:"text"`
	Price       float64            `json:"price" bson:"price"`
	Category    string             `json:"category,omitempty" bson:"category,omitempty" index:"single:1"`
	ImageURL    string             `json:"imageUrl,omitempty" bson:"imageUrl,omitempty"`
	Description string             `json:"description,omitempty" bson:"description,omitempty"`
	InStock     bool               `json:"inStock" bson:"inStock"`
	IsActive    bool               `json:"isActive" bson:"isActive" index:"single:1"`
	CreatedAt   int64              `json:"createdAt" bson:"createdAt"`
	UpdatedAt   int64              `json:"updatedAt" bson:"updatedAt"`
}
