package viewstate

import (
	"context"
	"testing"

	"github.com/dmitrijs2005/docdesk/internal/client/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_DefaultsToDocuments(t *testing.T) {
	assert.Equal(t, models.ViewDocuments, New().Active())
}

func TestStore_Set(t *testing.T) {
	s := New()

	require.NoError(t, s.Set(models.ViewStorage))
	assert.Equal(t, models.ViewStorage, s.Active())

	require.NoError(t, s.Set(models.ViewDocuments))
	assert.Equal(t, models.ViewDocuments, s.Active())
}

func TestStore_SetRejectsUnknown(t *testing.T) {
	s := New()
	require.NoError(t, s.Set(models.ViewStorage))

	err := s.Set("settings")
	assert.ErrorIs(t, err, ErrUnknownView)
	assert.Equal(t, models.ViewStorage, s.Active())
}

func TestStore_OnChangeOnlyForRealChanges(t *testing.T) {
	s := New()
	var seen []models.ActiveView
	s.OnChange(func(v models.ActiveView) { seen = append(seen, v) })

	require.NoError(t, s.Set(models.ViewDocuments))
	require.NoError(t, s.Set(models.ViewStorage))
	require.NoError(t, s.Set(models.ViewStorage))
	require.NoError(t, s.Set(models.ViewDocuments))

	assert.Equal(t, []models.ActiveView{models.ViewStorage, models.ViewDocuments}, seen)
}

func TestParseView(t *testing.T) {
	tests := []struct {
		in      string
		want    models.ActiveView
		wantErr bool
	}{
		{in: "documents", want: models.ViewDocuments},
		{in: "docs", want: models.ViewDocuments},
		{in: "viewDocuments", want: models.ViewStorage},
		{in: " Storage ", want: models.ViewStorage},
		{in: "settings", wantErr: true},
		{in: "", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseView(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrUnknownView)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestContext(t *testing.T) {
	s := New()
	ctx := NewContext(context.Background(), s)
	assert.Same(t, s, FromContext(ctx))
}

func TestFromContext_PanicsWithoutStore(t *testing.T) {
	assert.PanicsWithValue(t,
		"viewstate: no Store in context; install one with viewstate.NewContext",
		func() { FromContext(context.Background()) })
}
