package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/ersonp/plenum/internal/domain/entities"
	"github.com/ersonp/plenum/internal/domain/ports"
)

// DefaultBaseURI is used when no base URI is given.
const DefaultBaseURI = "/"

// MemberSummary is the body of members/{id}.json.
type MemberSummary struct {
	ID          string               `json:"id"`
	FirstName   string               `json:"first_name"`
	LastName    string               `json:"last_name"`
	Gender      string               `json:"gender"`
	DateOfBirth string               `json:"date_of_birth"`
	Language    string               `json:"language"`
	Province    string               `json:"province"`
	Party       string               `json:"party"`
	Wiki        *string              `json:"wiki"`
	Replaces    []ReplacementSummary `json:"replaces"`
	Activities  OrderedMap[string]   `json:"activities"` // Year → URI of the year file
	PhotoURL    *string              `json:"photo_url"`
}

// ReplacementSummary is one exported replacement period.
type ReplacementSummary struct {
	Member string       `json:"member"` // URI of the replaced member
	Dates  DatesSummary `json:"dates"`
}

// DatesSummary is an exported date range. End is null while ongoing.
type DatesSummary struct {
	Start string  `json:"start"`
	End   *string `json:"end"`
}

// ExportResult contains the result of exporting the whole registry.
type ExportResult struct {
	URIs []string
}

// ExportService writes members and their activities as static JSON resources.
type ExportService struct {
	writer ports.ResourceWriter
	logger *slog.Logger
}

// NewExportService creates a new export service.
func NewExportService(writer ports.ResourceWriter, logger *slog.Logger) *ExportService {
	return &ExportService{
		writer: writer,
		logger: orDiscard(logger),
	}
}

// Dump writes members/{id}/{year}.json for every year with activities and
// then members/{id}.json, and returns the URI of the member summary.
//
// Existing resources are overwritten. Dumps of the same member must not run
// concurrently, and an interrupted dump may leave year files and summary out
// of step.
func (s *ExportService) Dump(ctx context.Context, member *entities.Member, baseURI string) (string, error) {
	if !member.Sealed() {
		return "", fmt.Errorf("exporting %s: %w", member.ID(), entities.ErrMemberNotSealed)
	}
	if baseURI == "" {
		baseURI = DefaultBaseURI
	}

	id := member.ID()
	groups := GroupActivities(member.Activities(), baseURI)

	var activityURIs OrderedMap[string]
	for _, year := range groups.Years() {
		data, err := encodeJSON(groups.Year(year))
		if err != nil {
			return "", fmt.Errorf("encoding activities of %s for %s: %w", id, year, err)
		}

		path := "members/" + id + "/" + year + ".json"
		if err := s.writer.WriteResource(ctx, path, data); err != nil {
			return "", err
		}
		activityURIs.Set(year, baseURI+path)
	}

	data, err := encodeJSON(Summarize(member, activityURIs, baseURI))
	if err != nil {
		return "", fmt.Errorf("encoding member %s: %w", id, err)
	}
	if err := s.writer.WriteResource(ctx, member.URI(), data); err != nil {
		return "", err
	}

	s.logger.Debug("member exported", "id", id, "years", groups.Len())

	return baseURI + member.URI(), nil
}

// ExportAll loads and dumps every registered member in ID order.
func (s *ExportService) ExportAll(ctx context.Context, registry *RegistryService, baseURI string) (*ExportResult, error) {
	members, err := registry.List(ctx, 0, 0)
	if err != nil {
		return nil, err
	}

	result := &ExportResult{URIs: make([]string, 0, len(members))}
	for _, m := range members {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		loaded, err := registry.Load(ctx, m.ID())
		if err != nil {
			return result, err
		}

		uri, err := s.Dump(ctx, loaded, baseURI)
		if err != nil {
			return result, fmt.Errorf("exporting %s: %w", m, err)
		}
		result.URIs = append(result.URIs, uri)
	}

	s.logger.Info("export finished", "members", len(result.URIs), "base_uri", baseURI)

	return result, nil
}

// Summarize builds the summary resource of a member. activityURIs maps each
// year to the URI of its activity file, in the order the years were written.
func Summarize(member *entities.Member, activityURIs OrderedMap[string], baseURI string) MemberSummary {
	replaces := make([]ReplacementSummary, 0, len(member.Replaces()))
	for _, r := range member.Replaces() {
		dates := DatesSummary{Start: r.Dates.Start.Format(entities.DateLayout)}
		if r.Dates.End != nil {
			end := r.Dates.End.Format(entities.DateLayout)
			dates.End = &end
		}
		replaces = append(replaces, ReplacementSummary{
			Member: baseURI + entities.MemberResource(r.MemberRef),
			Dates:  dates,
		})
	}

	return MemberSummary{
		ID:          member.ID(),
		FirstName:   member.FirstName,
		LastName:    member.LastName,
		Gender:      member.Gender,
		DateOfBirth: member.DateOfBirth.Format(entities.DateLayout),
		Language:    member.Language,
		Province:    member.Province,
		Party:       member.Party,
		Wiki:        optional(member.Wiki),
		Replaces:    replaces,
		Activities:  activityURIs,
		PhotoURL:    optional(member.PhotoURL),
	}
}

func encodeJSON(v any) ([]byte, error) {
	var buf bytes.Buffer
	encoder := json.NewEncoder(&buf)
	encoder.SetEscapeHTML(false)
	if err := encoder.Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
