package mirror

import (
	"fmt"
	"strconv"
	"time"

	"inkbook/internal/domain"
	"inkbook/internal/pkg/utils"
)

// AccountFields is the mirror shape of an account. The password hash is never part of it.
func AccountFields(a *domain.Account) Fields {
	f := Fields{
		"id":         a.ID,
		"email":      a.Email,
		"name":       a.Name,
		"role":       string(a.Role),
		"avatar":     a.Avatar,
		"created_at": a.CreatedAt,
	}
	if p := a.Profile; p != nil {
		f["bio"] = p.Bio
		f["location"] = p.Location
		f["specialties"] = utils.ListToString(p.Specialties)
		f["portfolio"] = utils.ListToString(p.Portfolio)
		f["hourly_rate"] = p.HourlyRate
		f["rating"] = p.Rating
		f["total_reviews"] = p.TotalReviews
		f["approved"] = p.Approved
		f["availability"] = utils.AvailabilityToString(p.Availability)
	}
	return f
}

// Encode flattens fields into the string values stored by the secondary store.
func Encode(fields Fields) map[string]string {
	out := make(map[string]string, len(fields))
	for k, v := range fields {
		out[k] = encodeValue(v)
	}
	return out
}

func encodeValue(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case bool:
		return strconv.FormatBool(x)
	case int:
		return strconv.Itoa(x)
	case int64:
		return strconv.FormatInt(x, 10)
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case time.Time:
		return x.UTC().Format(time.RFC3339)
	case *string:
		if x == nil {
			return ""
		}
		return *x
	default:
		return fmt.Sprint(x)
	}
}

// DecodeAccount rebuilds an account from a mirror node. Unparseable numbers
// decode as zero; the primary store stays authoritative.
func DecodeAccount(n Node) domain.Account {
	v := n.Values
	a := domain.Account{
		ID:     n.ID,
		Email:  v["email"],
		Name:   v["name"],
		Role:   domain.Role(v["role"]),
		Avatar: v["avatar"],
	}
	if ts, err := time.Parse(time.RFC3339, v["created_at"]); err == nil {
		a.CreatedAt = ts
	}
	if a.Role != domain.RoleArtist {
		return a
	}

	rate, _ := strconv.ParseFloat(v["hourly_rate"], 64)
	rating, _ := strconv.ParseFloat(v["rating"], 64)
	total, _ := strconv.Atoi(v["total_reviews"])
	approved, _ := strconv.ParseBool(v["approved"])
	avail, _ := utils.StringToAvailability(v["availability"])

	a.Profile = &domain.ArtistProfile{
		Bio:          v["bio"],
		Location:     v["location"],
		Specialties:  utils.StringToList(v["specialties"]),
		Portfolio:    utils.StringToList(v["portfolio"]),
		HourlyRate:   rate,
		Rating:       rating,
		TotalReviews: total,
		Approved:     approved,
		Availability: avail,
	}
	return a
}

func sameValues(want, have map[string]string) bool {
	if len(want) != len(have) {
		return false
	}
	for k, w := range want {
		h, ok := have[k]
		if !ok || h != w {
			return false
		}
	}
	return true
}
