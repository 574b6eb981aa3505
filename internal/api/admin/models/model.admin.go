// Package models - Admin thuộc domain Admin.
package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Admin là tài khoản quản trị viên của dashboard
type Admin struct {
	ID           primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	Email        string             `json:"email" bson:"email" index:"unique"`
	Name         string             `json:"name,omitempty" bson:"name,omitempty"`
	PasswordHash string             `json:"-" bson:"password"`
	DeviceToken  string             `json:"deviceToken,omitempty" bson:"deviceToken,omitempty"`
	CreatedAt    int64              `json:"createdAt" bson:"createdAt"`
	UpdatedAt    int64              `json:"updatedAt" bson:"updatedAt"`
}
