package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ersonp/plenum/internal/domain/entities"
	"github.com/ersonp/plenum/internal/domain/ports"
	"github.com/ersonp/plenum/internal/infrastructure/parsers"
)

// ImportOptions controls import behavior.
type ImportOptions struct {
	DryRun bool // Validate without saving
}

// ImportError represents an error for a specific record during import.
type ImportError struct {
	Line    int    // Line number (1-indexed, 0 if unknown)
	Field   string // Which field has the error
	Value   string // The invalid value
	Message string // Human-readable error message
}

func (e ImportError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("line %d: %s", e.Line, e.Message)
	}
	return e.Message
}

// ImportResult contains the result of an import operation.
type ImportResult struct {
	Imported int
	Skipped  int
	Errors   []ImportError
}

// ImportService handles importing members, activities and replacements.
type ImportService struct {
	registry *RegistryService
	dates    ports.DateParser
	logger   *slog.Logger
}

// NewImportService creates a new import service.
func NewImportService(registry *RegistryService, dates ports.DateParser, logger *slog.Logger) *ImportService {
	return &ImportService{
		registry: registry,
		dates:    dates,
		logger:   orDiscard(logger),
	}
}

// ImportMembers validates static member records and registers them.
// Invalid records and identifier collisions are reported per line.
func (s *ImportService) ImportMembers(ctx context.Context, raws []parsers.RawMember, opts ImportOptions) (*ImportResult, error) {
	result := &ImportResult{}
	seen := make(map[string]*entities.Member)

	for i := range raws {
		raw := &raws[i]
		line := lineOf(raw.LineNum, i)

		member, importErr := s.buildMember(raw, line)
		if importErr != nil {
			result.Errors = append(result.Errors, *importErr)
			continue
		}

		if prev, ok := seen[member.ID()]; ok && !prev.SameIdentity(member) {
			result.Errors = append(result.Errors, collisionError(line, member,
				fmt.Errorf("%w: %s is held by %s", entities.ErrIdentifierCollision, member.ID(), prev)))
			continue
		}
		seen[member.ID()] = member

		var err error
		if opts.DryRun {
			err = s.registry.CheckCollision(ctx, member)
		} else {
			err = s.registry.Register(ctx, member)
		}
		if errors.Is(err, entities.ErrIdentifierCollision) {
			result.Errors = append(result.Errors, collisionError(line, member, err))
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("importing members: %w", err)
		}

		result.Imported++
	}

	s.logger.Info("members imported",
		"imported", result.Imported, "errors", len(result.Errors), "dry_run", opts.DryRun)

	return result, nil
}

func (s *ImportService) buildMember(raw *parsers.RawMember, line int) (*entities.Member, *ImportError) {
	member, err := MemberFromRecord(raw, s.dates)
	if err == nil {
		return member, nil
	}

	var missing *entities.MissingFieldError
	if errors.As(err, &missing) {
		return nil, &ImportError{Line: line, Field: missing.Field, Message: missing.Error()}
	}
	return nil, &ImportError{
		Line:    line,
		Field:   "date_of_birth",
		Value:   raw.DateOfBirth,
		Message: err.Error(),
	}
}

func collisionError(line int, member *entities.Member, err error) ImportError {
	return ImportError{Line: line, Field: "id", Value: member.ID(), Message: err.Error()}
}

// ImportActivities validates activity records, attaches each one to its
// member and stores it. Members named only by free text are resolved with
// HasName; the name must match exactly one member.
func (s *ImportService) ImportActivities(ctx context.Context, raws []parsers.RawActivity, opts ImportOptions) (*ImportResult, error) {
	members, err := s.registry.List(ctx, 0, 0)
	if err != nil {
		return nil, fmt.Errorf("importing activities: %w", err)
	}

	known := make(map[string]bool, len(members))
	for _, m := range members {
		known[m.ID()] = true
	}
	resolver := NewNameResolver(members)

	result := &ImportResult{}
	for i := range raws {
		raw := &raws[i]
		line := lineOf(raw.LineNum, i)

		record, importErr := s.buildRecord(raw, line, known, resolver)
		if importErr != nil {
			result.Errors = append(result.Errors, *importErr)
			continue
		}

		if !opts.DryRun {
			if err := s.registry.AddActivity(ctx, record); err != nil {
				return nil, fmt.Errorf("importing activities: %w", err)
			}
		}
		result.Imported++
	}

	s.logger.Info("activities imported",
		"imported", result.Imported, "errors", len(result.Errors), "dry_run", opts.DryRun)

	return result, nil
}

func (s *ImportService) buildRecord(raw *parsers.RawActivity, line int, known map[string]bool, resolver *NameResolver) (*entities.Record, *ImportError) {
	if strings.TrimSpace(raw.Type) == "" {
		return nil, &ImportError{Line: line, Field: "type", Message: "missing required field: type"}
	}
	if strings.TrimSpace(raw.Date) == "" {
		return nil, &ImportError{Line: line, Field: "date", Message: "missing required field: date"}
	}

	occurredAt, err := s.parseTimestamp(raw.Date)
	if err != nil {
		return nil, &ImportError{Line: line, Field: "date", Value: raw.Date, Message: err.Error()}
	}

	memberID, importErr := resolveMember(raw, line, known, resolver)
	if importErr != nil {
		return nil, importErr
	}

	id := raw.ID
	if id == "" {
		id = uuid.New().String()
	}

	return &entities.Record{
		ID:         id,
		MemberID:   memberID,
		Kind:       raw.Type,
		OccurredAt: occurredAt,
		Summary:    raw.Summary,
		Resource:   raw.Resource,
		Attributes: raw.Attributes,
	}, nil
}

func resolveMember(raw *parsers.RawActivity, line int, known map[string]bool, resolver *NameResolver) (string, *ImportError) {
	if raw.MemberID != "" {
		if !known[raw.MemberID] {
			return "", &ImportError{Line: line, Field: "member_id", Value: raw.MemberID, Message: "unknown member"}
		}
		return raw.MemberID, nil
	}

	if raw.MemberName == "" {
		return "", &ImportError{Line: line, Field: "member_name", Message: "missing member_id or member_name"}
	}

	matches := resolver.Resolve(raw.MemberName)
	switch len(matches) {
	case 0:
		return "", &ImportError{Line: line, Field: "member_name", Value: raw.MemberName, Message: "unknown member"}
	case 1:
		return matches[0].ID(), nil
	default:
		ids := make([]string, len(matches))
		for i, m := range matches {
			ids[i] = m.ID()
		}
		return "", &ImportError{
			Line:    line,
			Field:   "member_name",
			Value:   raw.MemberName,
			Message: fmt.Sprintf("ambiguous member name (matches %s)", strings.Join(ids, ", ")),
		}
	}
}

// parseTimestamp keeps RFC 3339 offsets exactly and falls back to the free
// text date parser.
func (s *ImportService) parseTimestamp(text string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, text); err == nil {
		return t, nil
	}
	return s.dates.Parse(text)
}

// ImportReplacements validates replacement periods and stores them.
// Both members must already be registered.
func (s *ImportService) ImportReplacements(ctx context.Context, raws []parsers.RawReplacement, opts ImportOptions) (*ImportResult, error) {
	members, err := s.registry.List(ctx, 0, 0)
	if err != nil {
		return nil, fmt.Errorf("importing replacements: %w", err)
	}
	known := make(map[string]bool, len(members))
	for _, m := range members {
		known[m.ID()] = true
	}

	result := &ImportResult{}
	for i := range raws {
		raw := &raws[i]
		line := lineOf(raw.LineNum, i)

		replacement, importErr := s.buildReplacement(raw, line, known)
		if importErr != nil {
			result.Errors = append(result.Errors, *importErr)
			continue
		}

		if !opts.DryRun {
			if err := s.registry.AddReplacement(ctx, raw.MemberID, *replacement); err != nil {
				return nil, fmt.Errorf("importing replacements: %w", err)
			}
		}
		result.Imported++
	}

	s.logger.Info("replacements imported",
		"imported", result.Imported, "errors", len(result.Errors), "dry_run", opts.DryRun)

	return result, nil
}

func (s *ImportService) buildReplacement(raw *parsers.RawReplacement, line int, known map[string]bool) (*entities.Replacement, *ImportError) {
	if !known[raw.MemberID] {
		return nil, &ImportError{Line: line, Field: "member_id", Value: raw.MemberID, Message: "unknown member"}
	}
	if !known[raw.ReplacedMemberID] {
		return nil, &ImportError{Line: line, Field: "replaced_member_id", Value: raw.ReplacedMemberID, Message: "unknown member"}
	}
	if raw.MemberID == raw.ReplacedMemberID {
		return nil, &ImportError{Line: line, Field: "replaced_member_id", Value: raw.ReplacedMemberID, Message: "member cannot replace itself"}
	}

	start, err := s.dates.Parse(raw.Start)
	if err != nil {
		return nil, &ImportError{Line: line, Field: "start", Value: raw.Start, Message: err.Error()}
	}

	dates := entities.DateRange{Start: start}
	if strings.TrimSpace(raw.End) != "" {
		end, err := s.dates.Parse(raw.End)
		if err != nil {
			return nil, &ImportError{Line: line, Field: "end", Value: raw.End, Message: err.Error()}
		}
		if end.Before(start) {
			return nil, &ImportError{Line: line, Field: "end", Value: raw.End, Message: "end is before start"}
		}
		dates.End = &end
	}

	return &entities.Replacement{MemberRef: raw.ReplacedMemberID, Dates: dates}, nil
}

func lineOf(lineNum, index int) int {
	if lineNum == 0 {
		return index + 1
	}
	return lineNum
}
