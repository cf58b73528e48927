// Package studentdata orchestrates the scrape pipeline: it owns the
// cached-artifact lifecycle, turns portal pages into typed results and
// answers schedule queries against them.
package studentdata

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"academia-backend/lib/schedule"
	"academia-backend/lib/scrapers/academia"
	"academia-backend/lib/timezone"
	"academia-backend/services/studentdata/store"

	"github.com/mazen160/go-random"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
)

var tracer = otel.Tracer("services/studentdata")

// ErrNetwork tags failures reaching the portal so callers can tell a
// transport problem apart from a parse problem.
var ErrNetwork = errors.New("portal unreachable")

var ErrNotLoggedIn = errors.New("not logged in")

// PageFetcher is the slice of the portal client the artifact flows
// need; tests substitute a canned implementation.
type PageFetcher interface {
	FetchPage(ctx context.Context, path string, sessionCookies string) (string, error)
}

// Authenticator is the slice of the portal client the login flow needs.
type Authenticator interface {
	LookupUser(ctx context.Context, username string) (academia.Lookup, error)
	ValidatePassword(ctx context.Context, lookup academia.Lookup, password string) (string, error)
}

type Service struct {
	store    store.Store
	fetcher  PageFetcher
	auth     Authenticator
	sessions sessionCache
	holder   *SnapshotHolder

	// Now is the clock used for freshness checks, endpoint selection
	// and schedule math; tests pin it.
	Now func() time.Time
}

func NewService(st store.Store, fetcher PageFetcher, auth Authenticator) *Service {
	return &Service{
		store:    st,
		fetcher:  fetcher,
		auth:     auth,
		sessions: newSessionCache(st),
		holder:   NewSnapshotHolder(),
		Now:      timezone.Now,
	}
}

func (s *Service) Holder() *SnapshotHolder {
	return s.holder
}

// StatusOf maps an artifact-flow error to the conventional status code:
// 200 success, -1 network failure, 500 anything else.
func StatusOf(err error) int {
	switch {
	case err == nil:
		return 200
	case errors.Is(err, ErrNetwork):
		return -1
	default:
		return 500
	}
}

func requestId() string {
	id, err := random.String(8)
	if err != nil {
		return "unknown"
	}
	return id
}

// Login resolves the username, validates the password and persists the
// resulting session cookies. A previous user's cached artifacts are
// cleared first.
func (s *Service) Login(ctx context.Context, username, password string) error {
	ctx, span := tracer.Start(ctx, "Login")
	defer span.End()

	log := slog.With("request_id", requestId(), "user", username)
	log.InfoContext(ctx, "logging in")

	lookup, err := s.auth.LookupUser(ctx, username)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return err
	}
	cookies, err := s.auth.ValidatePassword(ctx, lookup, password)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	err = s.store.ClearArtifacts(ctx)
	if err != nil {
		return err
	}
	err = s.store.PutCredentials(ctx, store.Credentials{
		Identifier: lookup.Identifier,
		Digest:     lookup.Digest,
		Cookies:    cookies,
	}, s.Now())
	if err != nil {
		return err
	}
	s.sessions.Invalidate()
	s.holder.Clear()

	log.InfoContext(ctx, "login succeeded")
	return nil
}

// Logout drops credentials, cached artifacts and the in-memory
// schedule snapshot.
func (s *Service) Logout(ctx context.Context) error {
	ctx, span := tracer.Start(ctx, "Logout")
	defer span.End()

	err := s.store.DeleteCredentials(ctx)
	if err != nil {
		return err
	}
	err = s.store.ClearArtifacts(ctx)
	if err != nil {
		return err
	}
	s.sessions.Invalidate()
	s.holder.Clear()
	return nil
}

// fetchArtifact runs the fetch-decode path for one artifact kind,
// serving a fresh cached payload when the policy allows and falling
// back to a stale one when the portal is unreachable.
func (s *Service) fetchArtifact(ctx context.Context, kind store.Kind, path string) (string, bool, error) {
	now := s.Now()

	cached, ok, err := s.store.GetFreshArtifact(ctx, kind, now)
	if err != nil {
		return "", false, err
	}
	if ok {
		return cached.Payload, true, nil
	}

	cookies, err := s.sessions.Cookies(ctx)
	if err != nil {
		return "", false, err
	}

	raw, err := s.fetcher.FetchPage(ctx, path, cookies)
	if err != nil {
		stale, ok, cacheErr := s.store.GetArtifact(ctx, kind)
		if cacheErr == nil && ok {
			slog.WarnContext(ctx, "portal unreachable, serving stale artifact",
				"kind", string(kind), "err", err)
			return stale.Payload, true, nil
		}
		return "", false, fmt.Errorf("%w: %v", ErrNetwork, err)
	}

	decoded, err := academia.DecodePage(raw)
	if err != nil {
		return "", false, err
	}
	return decoded, false, nil
}

func putJson(ctx context.Context, s *Service, kind store.Kind, value any) error {
	payload, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return s.store.PutArtifact(ctx, kind, string(payload), s.Now())
}

// Attendance returns the attendance records, scraping the portal when
// the 200 second window has lapsed. The student-info snapshot rides
// along on the same page and is cached from the same fetch.
func (s *Service) Attendance(ctx context.Context) ([]academia.AttendanceRecord, error) {
	ctx, span := tracer.Start(ctx, "Attendance")
	defer span.End()

	payload, cached, err := s.fetchArtifact(ctx, store.KindAttendance, academia.AttendancePath)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	if cached {
		var records []academia.AttendanceRecord
		err = json.Unmarshal([]byte(payload), &records)
		return records, err
	}

	tables, err := academia.ExtractTables(payload)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	records, err := academia.ParseAttendance(tables)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	info, err := academia.ParseStudentInfo(tables)
	if err == nil {
		err = putJson(ctx, s, store.KindStudentInfo, info)
		if err != nil {
			return nil, err
		}
	}
	marks, err := academia.ParseMarks(tables)
	if err == nil {
		err = putJson(ctx, s, store.KindMarks, marks)
		if err != nil {
			return nil, err
		}
	}

	err = putJson(ctx, s, store.KindAttendance, records)
	if err != nil {
		return nil, err
	}
	return records, nil
}

// StudentInfo returns the cached student-info snapshot, scraping the
// attendance page when none is cached for today.
func (s *Service) StudentInfo(ctx context.Context) (academia.StudentInfo, error) {
	ctx, span := tracer.Start(ctx, "StudentInfo")
	defer span.End()

	cached, ok, err := s.store.GetFreshArtifact(ctx, store.KindStudentInfo, s.Now())
	if err != nil {
		return academia.StudentInfo{}, err
	}
	if !ok {
		_, err = s.Attendance(ctx)
		if err != nil {
			return academia.StudentInfo{}, err
		}
		cached, ok, err = s.store.GetArtifact(ctx, store.KindStudentInfo)
		if err != nil {
			return academia.StudentInfo{}, err
		}
		if !ok {
			return academia.StudentInfo{}, academia.ErrInsufficientTables
		}
	}

	var info academia.StudentInfo
	err = json.Unmarshal([]byte(cached.Payload), &info)
	return info, err
}

// Marks returns the cached marks table, scraping the attendance page
// when none is cached for today. Marks share the attendance page's
// table set, so a marks read rides the same fetch.
func (s *Service) Marks(ctx context.Context) (academia.MarksTable, error) {
	ctx, span := tracer.Start(ctx, "Marks")
	defer span.End()

	cached, ok, err := s.store.GetFreshArtifact(ctx, store.KindMarks, s.Now())
	if err != nil {
		return academia.MarksTable{}, err
	}
	if !ok {
		_, err = s.Attendance(ctx)
		if err != nil {
			return academia.MarksTable{}, err
		}
		cached, ok, err = s.store.GetArtifact(ctx, store.KindMarks)
		if err != nil {
			return academia.MarksTable{}, err
		}
		if !ok {
			return academia.MarksTable{}, academia.ErrInsufficientTables
		}
	}

	var marks academia.MarksTable
	err = json.Unmarshal([]byte(cached.Payload), &marks)
	return marks, err
}

// Calendar returns the academic planner months, refreshed once per
// calendar day.
func (s *Service) Calendar(ctx context.Context) ([]academia.CalendarMonth, error) {
	ctx, span := tracer.Start(ctx, "Calendar")
	defer span.End()

	payload, cached, err := s.fetchArtifact(ctx, store.KindCalendar, academia.CalendarPath(s.Now()))
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	if cached {
		var months []academia.CalendarMonth
		err = json.Unmarshal([]byte(payload), &months)
		return months, err
	}

	months, err := academia.ParseCalendar(payload)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	err = putJson(ctx, s, store.KindCalendar, months)
	if err != nil {
		return nil, err
	}
	return months, nil
}

// Courses returns the course listing, refreshed once per calendar day.
func (s *Service) Courses(ctx context.Context) ([]academia.CourseRecord, error) {
	ctx, span := tracer.Start(ctx, "Courses")
	defer span.End()

	payload, cached, err := s.fetchArtifact(ctx, store.KindCourse, academia.CoursePath(s.Now()))
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	if cached {
		var courses []academia.CourseRecord
		err = json.Unmarshal([]byte(payload), &courses)
		return courses, err
	}

	tables, err := academia.ExtractTables(payload)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	courses := academia.ParseCourses(tables)
	err = putJson(ctx, s, store.KindCourse, courses)
	if err != nil {
		return nil, err
	}
	return courses, nil
}

// Timetable returns the day-order grid, refreshed once per calendar
// day. An empty grid is valid data.
func (s *Service) Timetable(ctx context.Context) ([]academia.DayOrderRow, error) {
	ctx, span := tracer.Start(ctx, "Timetable")
	defer span.End()

	payload, cached, err := s.fetchArtifact(ctx, store.KindTimetable, academia.TimetablePath)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	if cached {
		var grid []academia.DayOrderRow
		err = json.Unmarshal([]byte(payload), &grid)
		return grid, err
	}

	tables, err := academia.ExtractTables(payload)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	grid := academia.ParseTimetable(tables)
	err = putJson(ctx, s, store.KindTimetable, grid)
	if err != nil {
		return nil, err
	}
	return grid, nil
}

// NextClass reconciles the timetable, course mapping and calendar
// against the current time. The freshly assembled snapshot is also
// published to the holder for the notifier daemon.
func (s *Service) NextClass(ctx context.Context) (schedule.NextClassResult, error) {
	ctx, span := tracer.Start(ctx, "NextClass")
	defer span.End()

	grid, err := s.Timetable(ctx)
	if err != nil {
		return schedule.NextClassResult{}, err
	}
	courses, err := s.Courses(ctx)
	if err != nil {
		return schedule.NextClassResult{}, err
	}
	months, err := s.Calendar(ctx)
	if err != nil {
		return schedule.NextClassResult{}, err
	}

	mapping := academia.BuildSlotMapping(courses)
	s.holder.Set(Snapshot{
		Grid:    grid,
		Mapping: mapping,
		Months:  months,
	}, s.Now())

	return schedule.FindNextClass(grid, mapping, months, s.Now()), nil
}

// ExportICS renders the upcoming `days` of classes as an iCalendar
// document.
func (s *Service) ExportICS(ctx context.Context, days int) (string, error) {
	ctx, span := tracer.Start(ctx, "ExportICS")
	defer span.End()

	grid, err := s.Timetable(ctx)
	if err != nil {
		return "", err
	}
	courses, err := s.Courses(ctx)
	if err != nil {
		return "", err
	}
	months, err := s.Calendar(ctx)
	if err != nil {
		return "", err
	}

	return schedule.ExportICS(grid, academia.BuildSlotMapping(courses), months, s.Now(), days)
}

// AttendanceSummary links attendance records with the course listing
// and runs the target math over each.
func (s *Service) AttendanceSummary(ctx context.Context) ([]LinkedAttendance, error) {
	ctx, span := tracer.Start(ctx, "AttendanceSummary")
	defer span.End()

	records, err := s.Attendance(ctx)
	if err != nil {
		return nil, err
	}
	courses, err := s.Courses(ctx)
	if err != nil {
		// the summary is still useful without course links
		slog.WarnContext(ctx, "course listing unavailable, summary will be unlinked", "err", err)
		courses = nil
	}
	target, err := s.store.TargetPercent(ctx)
	if err != nil {
		return nil, err
	}

	return LinkAttendance(records, courses, target), nil
}

// TargetPercent and SetTargetPercent expose the attendance target
// preference.
func (s *Service) TargetPercent(ctx context.Context) (int, error) {
	return s.store.TargetPercent(ctx)
}

func (s *Service) SetTargetPercent(ctx context.Context, target int) error {
	return s.store.SetTargetPercent(ctx, target)
}
