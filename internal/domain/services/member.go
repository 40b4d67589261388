package services

import (
	"fmt"

	"github.com/ersonp/plenum/internal/domain/entities"
	"github.com/ersonp/plenum/internal/domain/ports"
	"github.com/ersonp/plenum/internal/infrastructure/parsers"
)

// Keys every static member record must carry. wiki may be null but not absent.
var requiredMemberKeys = []string{
	"first_name",
	"last_name",
	"party",
	"province",
	"language",
	"wiki",
	"gender",
	"date_of_birth",
}

// MemberFromRecord constructs a member from its static record, parsing the
// free-text date of birth with dates.
func MemberFromRecord(raw *parsers.RawMember, dates ports.DateParser) (*entities.Member, error) {
	for _, key := range requiredMemberKeys {
		if !raw.HasKey(key) {
			return nil, &entities.MissingFieldError{Field: key}
		}
	}

	dob, err := dates.Parse(raw.DateOfBirth)
	if err != nil {
		return nil, fmt.Errorf("parsing date_of_birth: %w", err)
	}

	return entities.NewMember(entities.MemberInfo{
		FirstName:        raw.FirstName,
		LastName:         raw.LastName,
		Party:            raw.Party,
		Province:         raw.Province,
		Language:         raw.Language,
		Gender:           raw.Gender,
		DateOfBirth:      dob,
		Wiki:             raw.Wiki,
		PhotoURL:         raw.PhotoURL,
		AlternativeNames: raw.AlternativeNames,
	}), nil
}
