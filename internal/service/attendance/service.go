package attendance

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/qubix-crm/crm-backend-go/internal/domain/attendance"
	"github.com/qubix-crm/crm-backend-go/internal/domain/employee"
	"github.com/qubix-crm/crm-backend-go/internal/domain/leave"
	"github.com/qubix-crm/crm-backend-go/internal/pkg/calendar"
)

// AttendanceService implements the daily status engine: one sign-in and one
// sign-out per employee per work date, status fixed at sign-in time.
type AttendanceService struct {
	records   attendance.Repository
	employees employee.Repository
	leaves    leave.RequestRepository
}

func NewAttendanceService(
	records attendance.Repository,
	employees employee.Repository,
	leaves leave.RequestRepository,
) *AttendanceService {
	return &AttendanceService{
		records:   records,
		employees: employees,
		leaves:    leaves,
	}
}

func (s *AttendanceService) SignIn(ctx context.Context, employeeID string, input *attendance.SignInInput, now time.Time) (*attendance.Record, error) {
	workDate := calendar.DayStart(now)
	status, lateMinutes := attendance.Classify(now)

	rec := &attendance.Record{
		ID:          uuid.New().String(),
		EmployeeID:  employeeID,
		WorkDate:    workDate,
		SignInAt:    now,
		Status:      status,
		LateMinutes: lateMinutes,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if input != nil {
		rec.SignInLatitude = input.Latitude
		rec.SignInLongitude = input.Longitude
		rec.SignInAddress = input.Address
	}

	if err := s.records.Create(ctx, rec); err != nil {
		return nil, err
	}

	return rec, nil
}

func (s *AttendanceService) SignOut(ctx context.Context, employeeID string, input *attendance.SignOutInput, now time.Time) (*attendance.Record, error) {
	rec, err := s.records.GetByEmployeeAndDate(ctx, employeeID, calendar.DayStart(now))
	if err != nil {
		if errors.Is(err, attendance.ErrAttendanceNotFound) {
			return nil, attendance.ErrNoActiveSignIn
		}
		return nil, err
	}
	if rec.SignOutAt != nil {
		return nil, attendance.ErrAlreadySignedOut
	}

	total := int(now.Sub(rec.SignInAt).Minutes())
	rec.SignOutAt = &now
	rec.TotalWorkedMinutes = &total
	if input != nil {
		rec.SignOutLatitude = input.Latitude
		rec.SignOutLongitude = input.Longitude
		rec.SignOutAddress = input.Address
	}

	if err := s.records.Update(ctx, rec); err != nil {
		return nil, err
	}

	return rec, nil
}

// rangeOrAllTime widens an optional date range to full-day bounds,
// defaulting each open side to an effectively unbounded date.
func rangeOrAllTime(from, to *time.Time) (time.Time, time.Time) {
	f := time.Date(1970, 1, 1, 0, 0, 0, 0, time.UTC)
	t := time.Date(9999, 12, 31, 0, 0, 0, 0, time.UTC)
	if from != nil {
		f = calendar.DayStart(*from)
	}
	if to != nil {
		t = calendar.DayEnd(*to)
	}
	return f, t
}

func (s *AttendanceService) MyAttendance(ctx context.Context, employeeID string, from, to *time.Time) ([]attendance.Record, error) {
	f, t := rangeOrAllTime(from, to)
	return s.records.ListByEmployee(ctx, employeeID, f, t)
}

func (s *AttendanceService) Dashboard(ctx context.Context, from, to *time.Time, now time.Time) (*attendance.Dashboard, error) {
	today := calendar.DayStart(now)
	todayEnd := calendar.DayEnd(now)

	roster, err := s.employees.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("load roster: %w", err)
	}

	todayRecords, err := s.records.ListByDate(ctx, today)
	if err != nil {
		return nil, err
	}
	recordByEmployee := make(map[string]*attendance.Record, len(todayRecords))
	for i := range todayRecords {
		recordByEmployee[todayRecords[i].EmployeeID] = &todayRecords[i]
	}

	activeLeaves, err := s.leaves.ListApprovedBetween(ctx, today, todayEnd)
	if err != nil {
		return nil, err
	}
	leaveByEmployee := make(map[string]*leave.Request, len(activeLeaves))
	for i := range activeLeaves {
		leaveByEmployee[activeLeaves[i].EmployeeID] = &activeLeaves[i]
	}

	f, t := rangeOrAllTime(from, to)
	rangeRecords, err := s.records.ListBetween(ctx, f, t)
	if err != nil {
		return nil, err
	}

	entries := make([]attendance.DashboardEntry, 0, len(roster))
	var stats attendance.DashboardStats
	stats.TotalEmployees = len(roster)
	stats.SignedInToday = len(todayRecords)

	for _, emp := range roster {
		entry := attendance.DashboardEntry{Employee: employeeRef(&emp)}

		// Approved leave trumps everything, then an absent record means
		// MISSED, otherwise the stored status stands.
		if lv, ok := leaveByEmployee[emp.ID]; ok {
			totalDays := calendar.InclusiveDaySpan(lv.StartDate, lv.EndDate)
			elapsed := calendar.InclusiveDaySpan(lv.StartDate, today)
			remaining := totalDays - elapsed
			if remaining < 0 {
				remaining = 0
			}
			entry.Status = attendance.StatusOnLeave
			entry.Leave = &attendance.LeaveContext{
				Category:      lv.Category,
				StartDate:     lv.StartDate,
				EndDate:       lv.EndDate,
				TotalDays:     totalDays,
				DaysRemaining: remaining,
				Reason:        lv.Reason,
			}
			stats.OnLeaveToday++
		} else if rec, ok := recordByEmployee[emp.ID]; ok {
			entry.Status = rec.Status
			signInAt := rec.SignInAt
			entry.SignInAt = &signInAt
			entry.SignOutAt = rec.SignOutAt
			entry.TotalMinutes = rec.TotalWorkedMinutes
			entry.LateMinutes = rec.LateMinutes
			if rec.TotalWorkedMinutes != nil {
				if *rec.TotalWorkedMinutes >= attendance.RequiredWorkMinutes {
					entry.CompletedHours = true
					stats.CompletedHoursToday++
				} else if rec.SignOutAt != nil {
					entry.SignedOutEarly = true
					stats.SignedOutEarlyToday++
				}
			}
			switch rec.Status {
			case attendance.StatusOnTime:
				stats.OnTimeToday++
			case attendance.StatusLate:
				stats.LateToday++
			}
		} else {
			entry.Status = attendance.StatusMissed
			stats.MissedToday++
		}

		entries = append(entries, entry)
	}

	return &attendance.Dashboard{
		TodayStatus: entries,
		Records:     rangeRecords,
		Leaderboard: buildLeaderboard(roster, rangeRecords),
		Stats:       stats,
	}, nil
}

// buildLeaderboard ranks employees with at least one record in the range
// by on-time percentage, highest first.
func buildLeaderboard(roster []employee.Employee, records []attendance.Record) []attendance.LeaderboardEntry {
	type tally struct {
		totalDays  int
		onTimeDays int
		arrival    []int
	}

	tallies := make(map[string]*tally)
	for _, rec := range records {
		st := tallies[rec.EmployeeID]
		if st == nil {
			st = &tally{}
			tallies[rec.EmployeeID] = st
		}
		st.totalDays++
		if rec.Status == attendance.StatusOnTime {
			st.onTimeDays++
		}
		st.arrival = append(st.arrival, rec.SignInAt.Hour()*60+rec.SignInAt.Minute())
	}

	entries := make([]attendance.LeaderboardEntry, 0, len(tallies))
	for _, emp := range roster {
		st, ok := tallies[emp.ID]
		if !ok {
			continue
		}

		sum := 0
		for _, m := range st.arrival {
			sum += m
		}
		avg := sum / len(st.arrival)

		entries = append(entries, attendance.LeaderboardEntry{
			Employee:         employeeRef(&emp),
			OnTimePercentage: round2(float64(st.onTimeDays) / float64(st.totalDays) * 100),
			TotalDays:        st.totalDays,
			OnTimeDays:       st.onTimeDays,
			AvgArrivalTime:   fmt.Sprintf("%d:%02d", avg/60, avg%60),
		})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].OnTimePercentage > entries[j].OnTimePercentage
	})

	return entries
}

func (s *AttendanceService) MonthlyAnalytics(ctx context.Context, year, month int) (*attendance.MonthlyReport, error) {
	if month < 1 || month > 12 {
		return nil, fmt.Errorf("invalid month: %d", month)
	}

	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	end := calendar.DayEnd(start.AddDate(0, 1, -1))
	period := calendar.Period{Start: start, End: end}

	roster, err := s.employees.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("load roster: %w", err)
	}
	records, err := s.records.ListBetween(ctx, start, end)
	if err != nil {
		return nil, err
	}
	approvedLeaves, err := s.leaves.ListApprovedBetween(ctx, start, end)
	if err != nil {
		return nil, err
	}

	totalWorkDays := calendar.WorkDaysBetween(start, end)

	summaries := make([]attendance.EmployeeMonthlySummary, len(roster))
	index := make(map[string]*attendance.EmployeeMonthlySummary, len(roster))
	for i := range roster {
		summaries[i] = attendance.EmployeeMonthlySummary{Employee: employeeRef(&roster[i])}
		index[roster[i].ID] = &summaries[i]
	}

	for _, rec := range records {
		st, ok := index[rec.EmployeeID]
		if !ok {
			continue
		}
		st.TotalDays++
		switch rec.Status {
		case attendance.StatusOnTime:
			st.OnTimeDays++
		case attendance.StatusLate:
			st.LateDays++
		}
		if rec.LateMinutes != nil {
			st.TotalLateMinutes += *rec.LateMinutes
		}
		if rec.TotalWorkedMinutes != nil {
			st.TotalWorkMinutes += *rec.TotalWorkedMinutes
			if *rec.TotalWorkedMinutes >= attendance.RequiredWorkMinutes {
				st.CompletedHoursDays++
			} else if rec.SignOutAt != nil {
				st.SignedOutEarlyDays++
			}
		}
	}

	// Leave spans clamp to the month and count work days only.
	for _, lv := range approvedLeaves {
		st, ok := index[lv.EmployeeID]
		if !ok {
			continue
		}
		clampedStart, clampedEnd := calendar.ClampToPeriod(lv.StartDate, lv.EndDate, period)
		leaveDays := calendar.WorkDaysBetween(clampedStart, clampedEnd)
		switch lv.Category {
		case leave.CategorySick:
			st.SickDays += leaveDays
		case leave.CategoryVacation:
			st.VacationDays += leaveDays
		}
	}

	var summary attendance.MonthlySummary
	for i := range summaries {
		st := &summaries[i]
		accounted := st.OnTimeDays + st.LateDays + st.SickDays + st.VacationDays
		st.AbsentDays = totalWorkDays - accounted
		if st.AbsentDays < 0 {
			st.AbsentDays = 0
		}
		if totalWorkDays > 0 {
			st.Reliability = round2(float64(st.OnTimeDays+st.SickDays+st.VacationDays) / float64(totalWorkDays) * 100)
		}

		summary.TotalOnTimeDays += st.OnTimeDays
		summary.TotalLateDays += st.LateDays
		summary.TotalAbsentDays += st.AbsentDays
		summary.TotalSickDays += st.SickDays
		summary.TotalVacationDays += st.VacationDays
	}

	if totalEmployeeDays := len(roster) * totalWorkDays; totalEmployeeDays > 0 {
		summary.OnTimePercentage = round2(float64(summary.TotalOnTimeDays) / float64(totalEmployeeDays) * 100)
		summary.LatePercentage = round2(float64(summary.TotalLateDays) / float64(totalEmployeeDays) * 100)
		summary.AbsentPercentage = round2(float64(summary.TotalAbsentDays) / float64(totalEmployeeDays) * 100)
	}

	return &attendance.MonthlyReport{
		Month:             month,
		Year:              year,
		TotalWorkDays:     totalWorkDays,
		Summary:           summary,
		EmployeeSummaries: summaries,
	}, nil
}

func employeeRef(e *employee.Employee) attendance.EmployeeRef {
	return attendance.EmployeeRef{
		ID:         e.ID,
		Name:       e.FullName(),
		Email:      e.Email,
		Role:       string(e.Role),
		Department: e.Department,
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
