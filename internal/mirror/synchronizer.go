package mirror

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"inkbook/internal/domain"
)

const mirrorTimeout = 10 * time.Second

// Synchronizer keeps the secondary store following the primary one.
// Primary writes are awaited and their errors returned; mirror writes are
// at-most-once and their failures are only logged.
type Synchronizer struct {
	primary   PrimaryStore
	secondary SecondaryStore

	inflight sync.WaitGroup
}

func NewSynchronizer(primary PrimaryStore, secondary SecondaryStore) *Synchronizer {
	return &Synchronizer{primary: primary, secondary: secondary}
}

// Report summarises one Reconcile pass.
type Report struct {
	Scanned   int      `json:"scanned"`
	Succeeded int      `json:"succeeded"`
	Unchanged int      `json:"unchanged"`
	Failed    int      `json:"failed"`
	Pruned    int      `json:"pruned"`
	Errors    []string `json:"errors"`
}

// Write updates the primary record, then mirrors the fields to users/<id> in the background.
func (s *Synchronizer) Write(ctx context.Context, id int64, fields Fields) error {
	if err := s.primary.UpdateFields(ctx, id, fields); err != nil {
		return fmt.Errorf("write account %d: %w", id, err)
	}
	s.mirrorAsync(ctx, PathUsers, id, fields)
	return nil
}

// WriteRoleSpecific is Write plus a parallel mirror to artists/<id> for artists.
func (s *Synchronizer) WriteRoleSpecific(ctx context.Context, id int64, fields Fields, role domain.Role) error {
	if err := s.primary.UpdateFields(ctx, id, fields); err != nil {
		return fmt.Errorf("write account %d: %w", id, err)
	}
	s.Mirror(ctx, id, role, fields)
	return nil
}

// Mirror runs only the secondary half of WriteRoleSpecific, for fields already
// committed to the primary store by other means.
func (s *Synchronizer) Mirror(ctx context.Context, id int64, role domain.Role, fields Fields) {
	s.mirrorAsync(ctx, PathUsers, id, fields)
	if role == domain.RoleArtist {
		s.mirrorAsync(ctx, PathArtists, id, fields)
	}
}

// Create stores the full record in the primary store and then awaits both
// mirror writes. Mirror failures are logged, not returned.
func (s *Synchronizer) Create(ctx context.Context, a *domain.Account) error {
	if err := s.primary.Create(ctx, a); err != nil {
		return fmt.Errorf("create account: %w", err)
	}

	values := Encode(AccountFields(a))
	paths := []string{PathUsers}
	if a.IsArtist() {
		paths = append(paths, PathArtists)
	}

	var wg sync.WaitGroup
	for _, path := range paths {
		wg.Add(1)
		go func(path string) {
			defer wg.Done()
			if err := s.secondary.Put(ctx, path, a.ID, values); err != nil {
				log.Printf("mirror_create_failed path=%s id=%d err=%v", path, a.ID, err)
			}
		}(path)
	}
	wg.Wait()
	return nil
}

// Delete removes the record from all three locations concurrently. Only the
// primary outcome decides the returned error.
func (s *Synchronizer) Delete(ctx context.Context, id int64) error {
	var (
		wg         sync.WaitGroup
		primaryErr error
		mirrorErrs [2]error
	)

	wg.Add(3)
	go func() {
		defer wg.Done()
		primaryErr = s.primary.Delete(ctx, id)
	}()
	for i, path := range []string{PathUsers, PathArtists} {
		go func(i int, path string) {
			defer wg.Done()
			mirrorErrs[i] = s.secondary.Delete(ctx, path, id)
		}(i, path)
	}
	wg.Wait()

	for i, path := range []string{PathUsers, PathArtists} {
		if mirrorErrs[i] != nil {
			log.Printf("mirror_delete_failed path=%s id=%d err=%v", path, id, mirrorErrs[i])
		}
	}
	if primaryErr != nil {
		return fmt.Errorf("delete account %d: %w", id, primaryErr)
	}
	return nil
}

// Reconcile scans every primary account and rewrites mirror nodes that differ.
// Nodes without a primary record are pruned. A pass over an unchanged primary
// store reports zero successes.
func (s *Synchronizer) Reconcile(ctx context.Context) (*Report, error) {
	accounts, err := s.primary.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("reconcile: list primary: %w", err)
	}

	rep := &Report{Errors: []string{}}
	users := make(map[int64]bool, len(accounts))
	artists := make(map[int64]bool)

	for i := range accounts {
		a := &accounts[i]
		rep.Scanned++
		users[a.ID] = true

		paths := []string{PathUsers}
		if a.IsArtist() {
			paths = append(paths, PathArtists)
			artists[a.ID] = true
		}

		want := Encode(AccountFields(a))
		repaired := false
		var failure error
		for _, path := range paths {
			changed, err := s.repair(ctx, path, a.ID, want)
			if err != nil {
				failure = err
				break
			}
			repaired = repaired || changed
		}

		switch {
		case failure != nil:
			rep.Failed++
			rep.Errors = append(rep.Errors, fmt.Sprintf("account %d: %v", a.ID, failure))
		case repaired:
			rep.Succeeded++
		default:
			rep.Unchanged++
		}
	}

	for path, keep := range map[string]map[int64]bool{PathUsers: users, PathArtists: artists} {
		n, err := s.prune(ctx, path, keep)
		rep.Pruned += n
		if err != nil {
			rep.Errors = append(rep.Errors, fmt.Sprintf("prune %s: %v", path, err))
		}
	}

	log.Printf("reconcile_done scanned=%d succeeded=%d unchanged=%d failed=%d pruned=%d",
		rep.Scanned, rep.Succeeded, rep.Unchanged, rep.Failed, rep.Pruned)
	return rep, nil
}

// Wait blocks until background mirror writes started so far have finished.
func (s *Synchronizer) Wait() {
	s.inflight.Wait()
}

// repair replaces the node at path/id when it differs from want.
func (s *Synchronizer) repair(ctx context.Context, path string, id int64, want map[string]string) (bool, error) {
	have, err := s.secondary.Get(ctx, path, id)
	if err != nil {
		return false, fmt.Errorf("read %s: %w", path, err)
	}
	if sameValues(want, have) {
		return false, nil
	}
	// Stale keys would survive a merge, so the node is replaced.
	if len(have) > 0 {
		if err := s.secondary.Delete(ctx, path, id); err != nil {
			return false, fmt.Errorf("clear %s: %w", path, err)
		}
	}
	if err := s.secondary.Put(ctx, path, id, want); err != nil {
		return false, fmt.Errorf("write %s: %w", path, err)
	}
	return true, nil
}

func (s *Synchronizer) prune(ctx context.Context, path string, keep map[int64]bool) (int, error) {
	nodes, err := s.secondary.Scan(ctx, path)
	if err != nil {
		return 0, err
	}
	pruned := 0
	for _, n := range nodes {
		if keep[n.ID] {
			continue
		}
		if err := s.secondary.Delete(ctx, path, n.ID); err != nil {
			return pruned, err
		}
		pruned++
	}
	return pruned, nil
}

func (s *Synchronizer) mirrorAsync(ctx context.Context, path string, id int64, fields Fields) {
	values := Encode(fields)
	detached := context.WithoutCancel(ctx)

	s.inflight.Add(1)
	go func() {
		defer s.inflight.Done()
		ctx, cancel := context.WithTimeout(detached, mirrorTimeout)
		defer cancel()
		if err := s.secondary.Put(ctx, path, id, values); err != nil {
			log.Printf("mirror_write_failed path=%s id=%d err=%v", path, id, err)
		}
	}()
}
