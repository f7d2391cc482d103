package category

import (
	"context"

	"github.com/wichananm65/tokopedia-trends/internal/backend"
	"github.com/wichananm65/tokopedia-trends/internal/state"
	"github.com/wichananm65/tokopedia-trends/internal/telemetry"
)

type Lister interface {
	List(ctx context.Context) backend.Result[[]Category]
}

// Store holds the category list of one page.
type Store struct {
	list Lister
	res  *state.Resource[[]Category]
}

func NewStore(list Lister, rec telemetry.Recorder) *Store {
	return &Store{
		list: list,
		res:  state.NewResource("useCategories", []Category{}, rec),
	}
}

func (s *Store) Fetch(ctx context.Context) state.Snapshot[[]Category] {
	snap, _ := s.res.Load(ctx, "fetchCategories", s.list.List)
	return snap
}

func (s *Store) State() state.Snapshot[[]Category] { return s.res.Snapshot() }

// ByID looks a category up in the loaded list.
func (s *Store) ByID(id int) (Category, bool) {
	for _, c := range s.res.Snapshot().Data {
		if c.ID == id {
			return c, true
		}
	}
	return Category{}, false
}

// Name returns the display name of a category, or UnknownName.
func (s *Store) Name(id int) string {
	if c, ok := s.ByID(id); ok && c.Name != "" {
		return c.Name
	}
	return UnknownName
}
