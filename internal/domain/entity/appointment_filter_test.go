package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppointmentFilterNormalize(t *testing.T) {
	t.Run("applies defaults to a zero filter", func(t *testing.T) {
		filter := &AppointmentFilter{}
		filter.Normalize()
		assert.Equal(t, 1, filter.Page)
		assert.Equal(t, 10, filter.PageSize)
	})

	t.Run("keeps values already in range", func(t *testing.T) {
		filter := &AppointmentFilter{Page: 3, PageSize: 25}
		filter.Normalize()
		assert.Equal(t, 3, filter.Page)
		assert.Equal(t, 25, filter.PageSize)
	})

	t.Run("caps an oversized page size back to the default", func(t *testing.T) {
		filter := &AppointmentFilter{Page: -1, PageSize: 500}
		filter.Normalize()
		assert.Equal(t, 1, filter.Page)
		assert.Equal(t, 10, filter.PageSize)
	})
}
