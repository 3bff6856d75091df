package models

import (
	"gorm.io/gorm"
)

// CartIdentity is the application-level view of who owns a cart: either a
// registered user or an anonymous visitor identified by a client-generated
// opaque token. Exactly one variant is set; the nullable user_id /
// anonymous_token column pair on cart_items is only its serialization.
type CartIdentity struct {
	UserID         *uint
	AnonymousToken string
}

func UserIdentity(userID uint) CartIdentity {
	return CartIdentity{UserID: &userID}
}

func AnonymousIdentity(token string) CartIdentity {
	return CartIdentity{AnonymousToken: token}
}

// IsZero reports that neither variant is present. Read paths treat this as
// an empty cart; mutations must reject it.
func (ci CartIdentity) IsZero() bool {
	return ci.UserID == nil && ci.AnonymousToken == ""
}

// Scope narrows a cart_items query to rows owned by this identity.
func (ci CartIdentity) Scope(db *gorm.DB) *gorm.DB {
	if ci.UserID != nil {
		return db.Where("user_id = ?", *ci.UserID)
	}
	return db.Where("anonymous_token = ?", ci.AnonymousToken)
}

// Columns returns the nullable column pair for inserting a new cart row.
func (ci CartIdentity) Columns() (*uint, *string) {
	if ci.UserID != nil {
		return ci.UserID, nil
	}
	token := ci.AnonymousToken
	return nil, &token
}
