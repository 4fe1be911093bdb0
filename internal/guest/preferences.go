package guest

import (
	"context"

	"fintrack/internal/core"
)

func (r *Repository) Preferences(_ context.Context) core.Preferences {
	var out core.Preferences
	r.read(func(s *core.Snapshot) { out = s.Preferences })
	return out
}

// UpdatePreferences overwrites only the fields set in patch. An invalid
// patch leaves the stored preferences untouched; they are returned as is.
func (r *Repository) UpdatePreferences(ctx context.Context, patch core.PreferencesPatch) core.Preferences {
	var (
		out core.Preferences
		err error
	)
	r.mutate(ctx, func(s *core.Snapshot) (core.ChangeEvent, bool) {
		p := s.Preferences
		patch.Apply(&p)
		if err = p.Validate(); err != nil {
			out = s.Preferences
			return core.ChangeEvent{}, false
		}
		s.Preferences = p
		out = p
		return core.ChangeEvent{Entity: core.EntityPreferences, Op: core.OpUpdated, ID: r.owner}, true
	})
	if err != nil {
		r.invalid(ctx, core.EntityPreferences, err)
	}
	return out
}
