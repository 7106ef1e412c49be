package repository

import (
	"fmt"

	"github.com/infact-news/infact/internal/domain"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// EncodeID converts a store-native identifier value into its external
// 24-character hex form. Historical documents carry either ObjectIDs or
// raw strings, so a malformed envelope falls back to a plain string
// conversion instead of failing the whole read.
func EncodeID(raw interface{}) string {
	switch v := raw.(type) {
	case primitive.ObjectID:
		return v.Hex()
	case string:
		return v
	case nil:
		return ""
	default:
		return fmt.Sprintf("%v", v)
	}
}

// ValidateID reports whether s is a well-formed external identifier:
// exactly 24 characters, all hexadecimal.
func ValidateID(s string) bool {
	if len(s) != 24 {
		return false
	}
	for _, c := range s {
		switch {
		case c >= '0' && c <= '9':
		case c >= 'a' && c <= 'f':
		case c >= 'A' && c <= 'F':
		default:
			return false
		}
	}
	return true
}

// IDQuery wraps a validated external identifier back into the native
// envelope used for equality and membership queries. Callers must treat
// the returned error as a validation failure; no store round-trip happens
// for an invalid id.
func IDQuery(s string) (primitive.ObjectID, error) {
	if !ValidateID(s) {
		return primitive.NilObjectID, domain.ErrInvalidObjectID
	}
	oid, err := primitive.ObjectIDFromHex(s)
	if err != nil {
		return primitive.NilObjectID, domain.ErrInvalidObjectID
	}
	return oid, nil
}

// ValidateClusterID is the cluster-specific id check with the finer error
// split the cluster endpoints report.
func ValidateClusterID(s string) error {
	if len(s) != 24 {
		return domain.ErrInvalidClusterIDLength
	}
	if !ValidateID(s) {
		return domain.ErrInvalidClusterIDFormat
	}
	return nil
}
