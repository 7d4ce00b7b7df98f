package artist

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sort"
	"strings"

	"inkbook/internal/domain"
	"inkbook/internal/mirror"
	"inkbook/internal/pkg/imageenc"
	"inkbook/internal/pkg/utils"
	"inkbook/internal/pkg/validator"
	"inkbook/internal/repository"
	"inkbook/internal/session"
)

const maxPortfolio = 12

type Service struct {
	primary  PrimaryReader
	listings ListingReader
	writer   ProfileWriter
}

func NewService(primary PrimaryReader, listings ListingReader, writer ProfileWriter) *Service {
	return &Service{primary: primary, listings: listings, writer: writer}
}

// List returns approved artists from the mirrored listing, falling back to
// the primary store when the mirror cannot be read.
func (s *Service) List(ctx context.Context, q ListQuery) (*ListResult, error) {
	q = normalizeQuery(q)

	nodes, err := s.listings.Scan(ctx, mirror.PathArtists)
	if err != nil {
		log.Printf("artist_list_mirror_failed err=%v fallback=primary", err)
		return s.listPrimary(ctx, q)
	}

	matched := make([]domain.Account, 0, len(nodes))
	for _, n := range nodes {
		a := mirror.DecodeAccount(n)
		if !a.Visible() || !matches(&a, q) {
			continue
		}
		matched = append(matched, a)
	}
	sort.SliceStable(matched, func(i, j int) bool {
		if matched[i].Profile.Rating != matched[j].Profile.Rating {
			return matched[i].Profile.Rating > matched[j].Profile.Rating
		}
		return matched[i].ID < matched[j].ID
	})

	res := &ListResult{Total: int64(len(matched)), Limit: q.Limit, Offset: q.Offset, Artists: []domain.Account{}}
	if q.Offset < len(matched) {
		end := q.Offset + q.Limit
		if end > len(matched) {
			end = len(matched)
		}
		res.Artists = matched[q.Offset:end]
	}
	return res, nil
}

func (s *Service) listPrimary(ctx context.Context, q ListQuery) (*ListResult, error) {
	approved := true
	items, total, err := s.primary.ListArtists(ctx, repository.ArtistFilters{
		Approved:  &approved,
		Specialty: q.Specialty,
		Location:  q.Location,
		Limit:     q.Limit,
		Offset:    q.Offset,
	})
	if err != nil {
		return nil, fmt.Errorf("list artists: %w", err)
	}
	return &ListResult{Artists: items, Total: total, Limit: q.Limit, Offset: q.Offset}, nil
}

// Get reads one approved artist from the primary store.
func (s *Service) Get(ctx context.Context, id int64) (*domain.Account, error) {
	a, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if !a.Visible() {
		return nil, ErrNotFound
	}
	return a, nil
}

// UpdateProfile validates the edit, availability included, before any write.
func (s *Service) UpdateProfile(ctx context.Context, actor session.Session, req UpdateProfileRequest) (*domain.Account, error) {
	if actor.Role != domain.RoleArtist {
		return nil, ErrForbidden
	}
	if errs := validator.Validate(req); errs != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, errs)
	}

	fields := mirror.Fields{}
	if req.Bio != nil {
		fields["bio"] = strings.TrimSpace(*req.Bio)
	}
	if req.Location != nil {
		fields["location"] = strings.TrimSpace(*req.Location)
	}
	if req.Specialties != nil {
		fields["specialties"] = utils.ListToString(normalizeSpecialties(req.Specialties))
	}
	if req.HourlyRate != nil {
		fields["hourly_rate"] = *req.HourlyRate
	}
	if req.Availability != nil {
		av := *req.Availability
		if av == nil {
			av = domain.Availability{}
		}
		av.Normalize()
		if err := av.Validate(); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrValidation, err)
		}
		fields["availability"] = utils.AvailabilityToString(av)
	}

	if len(fields) > 0 {
		if err := s.write(ctx, actor.AccountID, fields); err != nil {
			return nil, err
		}
	}
	return s.load(ctx, actor.AccountID)
}

func (s *Service) AddPortfolioImage(ctx context.Context, actor session.Session, img *imageenc.Image) (*domain.Account, error) {
	a, err := s.own(ctx, actor)
	if err != nil {
		return nil, err
	}
	if len(a.Profile.Portfolio) >= maxPortfolio {
		return nil, ErrPortfolioFull
	}

	portfolio := append(append([]string{}, a.Profile.Portfolio...), img.DataURL)
	if err := s.write(ctx, a.ID, mirror.Fields{"portfolio": utils.ListToString(portfolio)}); err != nil {
		return nil, err
	}
	a.Profile.Portfolio = portfolio
	return a, nil
}

func (s *Service) RemovePortfolioImage(ctx context.Context, actor session.Session, index int) (*domain.Account, error) {
	a, err := s.own(ctx, actor)
	if err != nil {
		return nil, err
	}
	if index < 0 || index >= len(a.Profile.Portfolio) {
		return nil, ErrPortfolioIndex
	}

	portfolio := make([]string, 0, len(a.Profile.Portfolio)-1)
	portfolio = append(portfolio, a.Profile.Portfolio[:index]...)
	portfolio = append(portfolio, a.Profile.Portfolio[index+1:]...)
	if err := s.write(ctx, a.ID, mirror.Fields{"portfolio": utils.ListToString(portfolio)}); err != nil {
		return nil, err
	}
	a.Profile.Portfolio = portfolio
	return a, nil
}

func (s *Service) own(ctx context.Context, actor session.Session) (*domain.Account, error) {
	if actor.Role != domain.RoleArtist {
		return nil, ErrForbidden
	}
	return s.load(ctx, actor.AccountID)
}

func (s *Service) load(ctx context.Context, id int64) (*domain.Account, error) {
	a, err := s.primary.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get artist %d: %w", id, err)
	}
	if !a.IsArtist() || a.Profile == nil {
		return nil, ErrNotFound
	}
	return a, nil
}

func (s *Service) write(ctx context.Context, id int64, fields mirror.Fields) error {
	err := s.writer.WriteRoleSpecific(ctx, id, fields, domain.RoleArtist)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrNotFound
	}
	return err
}

func normalizeQuery(q ListQuery) ListQuery {
	if q.Limit <= 0 || q.Limit > 100 {
		q.Limit = 20
	}
	if q.Offset < 0 {
		q.Offset = 0
	}
	q.Specialty = strings.ToLower(strings.TrimSpace(q.Specialty))
	q.Location = strings.TrimSpace(q.Location)
	return q
}

func matches(a *domain.Account, q ListQuery) bool {
	if q.Location != "" && !strings.Contains(strings.ToLower(a.Profile.Location), strings.ToLower(q.Location)) {
		return false
	}
	if q.Specialty == "" {
		return true
	}
	for _, sp := range a.Profile.Specialties {
		if strings.EqualFold(sp, q.Specialty) {
			return true
		}
	}
	return false
}

// normalizeSpecialties lowercases, trims and de-duplicates, keeping order.
func normalizeSpecialties(in []string) []string {
	seen := make(map[string]bool, len(in))
	out := make([]string, 0, len(in))
	for _, sp := range in {
		sp = strings.ToLower(strings.TrimSpace(sp))
		if sp == "" || seen[sp] {
			continue
		}
		seen[sp] = true
		out = append(out, sp)
	}
	return out
}
