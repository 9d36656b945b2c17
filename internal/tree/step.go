package tree

import (
	"github.com/alexisbeaulieu97/placard/internal/layout"
	"github.com/alexisbeaulieu97/placard/internal/uistate"
)

// Apply performs a scripted state write. Width goes through the offloaded
// breakpoint path; everything else is applied as one batch.
func (t *Tree) Apply(step layout.Step) {
	if step.Width != nil {
		t.store.SetWidth(*step.Width)
	}

	hasBatch := step.DarkMode != nil || step.Interaction != nil || step.Current != nil || len(step.Custom) > 0
	if !hasBatch {
		return
	}
	if step.Current != nil {
		t.store.SetCurrent(*step.Current)
	}
	t.store.Batch(func(b *uistate.Batch) {
		if step.DarkMode != nil {
			b.SetDarkMode(*step.DarkMode)
		}
		if step.Interaction != nil {
			b.SetInteraction(*step.Interaction)
		}
		for _, write := range step.Custom {
			id := uistate.GlobalID(write.Key)
			if write.Position != nil {
				id = uistate.LocalID(*write.Position, write.Key)
			}
			b.SetCustomState(id, write.Value)
		}
	})
}
