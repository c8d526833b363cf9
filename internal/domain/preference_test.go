package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPreferenceMap_Enabled(t *testing.T) {
	t.Run("nil map allows everything", func(t *testing.T) {
		var prefs PreferenceMap
		assert.True(t, prefs.Enabled(NotifNewReview))
	})

	t.Run("unset type fails open", func(t *testing.T) {
		prefs := PreferenceMap{NotifListingLiked: false}
		assert.True(t, prefs.Enabled(NotifNewReview))
	})

	t.Run("unknown type fails open", func(t *testing.T) {
		prefs := PreferenceMap{}
		assert.True(t, prefs.Enabled(NotificationType("not_a_real_type")))
	})

	t.Run("explicit opt-out disables", func(t *testing.T) {
		prefs := PreferenceMap{NotifListingLiked: false}
		assert.False(t, prefs.Enabled(NotifListingLiked))
	})

	t.Run("explicit opt-in enables", func(t *testing.T) {
		prefs := PreferenceMap{NotifListingLiked: true}
		assert.True(t, prefs.Enabled(NotifListingLiked))
	})
}

func TestPreferenceMap_Scan(t *testing.T) {
	t.Run("from bytes", func(t *testing.T) {
		var prefs PreferenceMap
		err := prefs.Scan([]byte(`{"listing_liked":false,"welcome":true}`))

		assert.NoError(t, err)
		assert.False(t, prefs.Enabled(NotifListingLiked))
		assert.True(t, prefs.Enabled(NotifWelcome))
	})

	t.Run("null column yields empty map", func(t *testing.T) {
		var prefs PreferenceMap
		err := prefs.Scan(nil)

		assert.NoError(t, err)
		assert.True(t, prefs.Enabled(NotifNewReview))
	})
}
