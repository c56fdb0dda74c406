package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

func TestCustomerDocumentLayout(t *testing.T) {
	c := Customer{
		ID:        7,
		Name:      "John",
		Email:     "john@example.com",
		Phone:     "555",
		Company:   "Acme",
		CreatedAt: time.UnixMilli(1_650_000_000_000).UTC(),
	}

	raw, err := bson.Marshal(c)
	require.NoError(t, err, "failed to marshal customer document")

	var doc bson.M
	require.NoError(t, bson.Unmarshal(raw, &doc), "failed to unmarshal customer document")

	for _, key := range []string{"_id", "name", "email", "phone", "company", "created_at"} {
		require.Contains(t, doc, key)
	}
	require.NotContains(t, doc, "createdAt")
	require.Len(t, doc, 6)
}

func TestCustomerPatch(t *testing.T) {
	blank := "   "
	name := " John "

	t.Log("blank optional strings are dropped and the rest trimmed")
	{
		p := CustomerPatch{Name: &name, Phone: &blank}.Usable()
		require.Equal(t, "John", *p.Name)
		require.Nil(t, p.Phone)
		require.False(t, p.IsEmpty())
	}

	t.Log("patch without fields is empty")
	{
		require.True(t, CustomerPatch{Email: &blank}.Usable().IsEmpty())
		require.Empty(t, CustomerPatch{}.EmailValue())
	}
}
