package repository

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/infact-news/infact/internal/domain"
)

func TestEncodeID(t *testing.T) {
	oid := primitive.NewObjectID()

	tests := []struct {
		name string
		raw  interface{}
		want string
	}{
		{name: "native id", raw: oid, want: oid.Hex()},
		{name: "raw string passes through", raw: "legacy-id-123", want: "legacy-id-123"},
		{name: "nil is empty", raw: nil, want: ""},
		{name: "unexpected type stringified", raw: 42, want: "42"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, EncodeID(tt.raw))
		})
	}
}

func TestValidateID(t *testing.T) {
	tests := []struct {
		name string
		id   string
		want bool
	}{
		{name: "lowercase hex", id: "507f1f77bcf86cd799439011", want: true},
		{name: "uppercase hex", id: "507F1F77BCF86CD799439011", want: true},
		{name: "too short", id: "507f1f77bcf86cd79943901", want: false},
		{name: "too long", id: "507f1f77bcf86cd7994390111", want: false},
		{name: "non-hex character", id: "507f1f77bcf86cd79943901z", want: false},
		{name: "empty", id: "", want: false},
		{name: "whitespace padded", id: " 507f1f77bcf86cd79943901", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ValidateID(tt.id))
		})
	}
}

// Encoding the native form of any valid lowercase id returns the id
// unchanged.
func TestIDRoundTrip(t *testing.T) {
	ids := []string{
		"507f1f77bcf86cd799439011",
		"000000000000000000000000",
		"ffffffffffffffffffffffff",
		primitive.NewObjectIDFromTimestamp(time.Unix(0, 0)).Hex(),
		primitive.NewObjectID().Hex(),
	}

	for _, id := range ids {
		oid, err := IDQuery(id)
		require.NoError(t, err, id)
		assert.Equal(t, strings.ToLower(id), EncodeID(oid))
	}
}

func TestIDQueryInvalid(t *testing.T) {
	_, err := IDQuery("not-a-valid-id")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidObjectID)
}

func TestValidateClusterID(t *testing.T) {
	tests := []struct {
		name    string
		id      string
		wantErr error
	}{
		{name: "valid", id: "507f1f77bcf86cd799439011", wantErr: nil},
		{name: "wrong length reported first", id: "short", wantErr: domain.ErrInvalidClusterIDLength},
		{name: "right length bad chars", id: "zzzzzzzzzzzzzzzzzzzzzzzz", wantErr: domain.ErrInvalidClusterIDFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateClusterID(tt.id)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}
