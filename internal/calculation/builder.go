package calculation

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/fpgo/leave-planner/internal/domain"
)

var seven = decimal.NewFromInt(7)

// BuildSpec is the fully resolved input for one timeline construction.
// DaysPerWeek is the effective withdrawal cadence; the optimizer picks it
// per strategy before calling the builder.
type BuildSpec struct {
	Parent1            domain.ParentInput
	Parent2            domain.ParentInput
	Start              time.Time
	TotalMonths        int
	Parent1Months      int
	Parent2Months      int
	DaysPerWeek        int
	SimultaneousMonths int
}

// BenefitPeriodBuilder turns a month split into an ordered list of leave
// periods, consuming each parent's day pool as it walks the timeline.
type BenefitPeriodBuilder struct {
	Rules  domain.BenefitRuleSet
	Income *IncomeCalculator
	Logger Logger
}

// NewBenefitPeriodBuilder creates a builder for the given rule set.
func NewBenefitPeriodBuilder(rules domain.BenefitRuleSet) *BenefitPeriodBuilder {
	return &BenefitPeriodBuilder{
		Rules:  rules,
		Income: NewIncomeCalculator(rules),
		Logger: NopLogger{},
	}
}

// Build walks the timeline month by month and emits the period list plus
// the final day pools. The timeline is the serial concatenation of
// parent1's months and parent2's months, truncated at TotalMonths; the
// first SimultaneousMonths of it additionally carry a concurrent overlay
// draw from the other parent's pool, so simultaneous months never extend
// the calendar span. Day-pool depletion is never an error here: demand
// beyond both tiers becomes unpaid filler days.
func (b *BenefitPeriodBuilder) Build(spec BuildSpec) ([]domain.LeavePeriod, map[domain.ParentRole]domain.DayPool, error) {
	if spec.DaysPerWeek <= 0 {
		return nil, nil, poolExhausted("build periods", "days per week must be positive, got %d", spec.DaysPerWeek)
	}
	if spec.Parent1Months < 0 || spec.Parent2Months < 0 || spec.SimultaneousMonths < 0 {
		return nil, nil, poolExhausted("build periods", "month counts cannot be negative (%d/%d, simultaneous %d)",
			spec.Parent1Months, spec.Parent2Months, spec.SimultaneousMonths)
	}

	pools := map[domain.ParentRole]domain.DayPool{
		domain.Parent1: domain.NewDayPool(b.Rules),
		domain.Parent2: domain.NewDayPool(b.Rules),
	}
	leaveMonths := map[domain.ParentRole]int{}

	serialMonths := spec.Parent1Months + spec.Parent2Months
	if serialMonths > spec.TotalMonths {
		serialMonths = spec.TotalMonths
	}

	var periods []domain.LeavePeriod

	// The mandatory initial days for the second parent come first and are
	// always simultaneous with the start of the timeline.
	initialDays := 0
	if b.Rules.InitialDays > 0 && spec.TotalMonths > 0 {
		periods = append(periods, b.buildInitialPeriod(spec, pools, serialMonths)...)
		initialDays = b.Rules.InitialDays
	}

	cursor := spec.Start
	for i := 0; i < serialMonths; i++ {
		monthEnd := cursor.AddDate(0, 1, 0).AddDate(0, 0, -1)
		calDays := daysInclusive(cursor, monthEnd)

		owner := domain.Parent1
		if i >= spec.Parent1Months {
			owner = domain.Parent2
		}
		other := owner.Other()
		simultaneous := i < spec.SimultaneousMonths

		need := withdrawalDays(calDays, spec.DaysPerWeek)

		otherNetMonthly := decimal.Zero
		otherNetDaily := decimal.Zero
		if !simultaneous {
			otherParent := spec.parent(other)
			otherNetMonthly = b.Income.NetMonthlyIncome(otherParent)
			otherNetDaily = b.Income.NetDailyIncome(otherParent)
			if i == 0 && other == domain.Parent2 && initialDays > 0 {
				// Parent2 spends the initial days on benefit, not at work,
				// so only the rest of the month pays salary.
				worked := calDays - min(initialDays, calDays)
				otherNetDaily = otherNetDaily.
					Mul(decimal.NewFromInt(int64(worked))).
					Div(decimal.NewFromInt(int64(calDays)))
			}
		}

		pool := pools[owner]
		high, low := pool.Draw(need)
		pools[owner] = pool
		filler := need - high - low

		withinWindow := leaveMonths[owner] < b.Rules.TopUpWindowMonths
		periods = append(periods, b.monthSegments(
			spec.parent(owner), spec.parent(other), owner,
			cursor, calDays, need, high, low, filler,
			spec.DaysPerWeek, withinWindow, otherNetMonthly, otherNetDaily, false)...)

		if simultaneous {
			overlayPool := pools[other]
			h2, l2 := overlayPool.Draw(need)
			pools[other] = overlayPool
			if h2+l2 > 0 {
				overlayWithin := leaveMonths[other] < b.Rules.TopUpWindowMonths
				periods = append(periods, b.monthSegments(
					spec.parent(other), spec.parent(owner), other,
					cursor, calDays, h2+l2, h2, l2, 0,
					spec.DaysPerWeek, overlayWithin, decimal.Zero, decimal.Zero, true)...)
			}
			leaveMonths[other]++
		}
		leaveMonths[owner]++

		cursor = cursor.AddDate(0, 1, 0)
	}

	return mergeAdjacent(periods), pools, nil
}

// buildInitialPeriod consumes the mandatory birth-related days from the
// second parent's pool. The first parent is normally at home too, so the
// period is an overlay; its household income carries only the benefit.
func (b *BenefitPeriodBuilder) buildInitialPeriod(spec BuildSpec, pools map[domain.ParentRole]domain.DayPool, serialMonths int) []domain.LeavePeriod {
	owner := domain.Parent2
	parent := spec.parent(owner)
	otherOnLeave := serialMonths > 0

	pool := pools[owner]
	high, low := pool.Draw(b.Rules.InitialDays)
	pools[owner] = pool

	otherNetMonthly := decimal.Zero
	otherNetDaily := decimal.Zero
	if !otherOnLeave {
		otherParent := spec.parent(owner.Other())
		otherNetMonthly = b.Income.NetMonthlyIncome(otherParent)
		otherNetDaily = b.Income.NetDailyIncome(otherParent)
	}

	segments := b.monthSegments(
		parent, spec.parent(owner.Other()), owner,
		spec.Start, high+low, high+low, high, low, 0,
		7, true, otherNetMonthly, otherNetDaily, true)
	for i := range segments {
		segments[i].IsInitialTenDayPeriod = true
	}
	return segments
}

// monthSegments emits the periods for one month of one parent's leave,
// splitting the calendar range between the high, low and filler portions
// in proportion to their day counts.
func (b *BenefitPeriodBuilder) monthSegments(
	parent, other domain.ParentInput, role domain.ParentRole,
	start time.Time, calDays, need, high, low, filler int,
	daysPerWeek int, withinWindow bool,
	otherNetMonthly, otherNetDaily decimal.Decimal, simultaneous bool,
) []domain.LeavePeriod {
	if need <= 0 {
		return nil
	}

	type segment struct {
		level  domain.BenefitLevel
		days   int
		filler bool
	}
	var segs []segment
	if high > 0 {
		segs = append(segs, segment{domain.BenefitHigh, high, false})
	}
	if low > 0 {
		segs = append(segs, segment{domain.BenefitLow, low, false})
	}
	if filler > 0 {
		segs = append(segs, segment{domain.BenefitNone, filler, true})
	}

	var out []domain.LeavePeriod
	cursor := start
	remainingCal := calDays
	remainingNeed := need
	for _, seg := range segs {
		segDays := remainingCal
		if seg.days < remainingNeed {
			segDays = remainingCal * seg.days / remainingNeed
			if segDays < 1 {
				segDays = 1
			}
		}
		remainingCal -= segDays
		remainingNeed -= seg.days

		benefit := b.Income.DailyBenefit(parent, seg.level)
		topUp := decimal.Zero
		if !seg.filler {
			topUp = b.Income.CollectiveTopUp(parent, withinWindow)
		}

		// Household income per calendar day: the owner's net benefit at
		// the withdrawal cadence, plus the other parent's net salary when
		// they are working.
		cadence := decimal.NewFromInt(int64(daysPerWeek)).Div(seven)
		household := benefit.Add(topUp).Mul(b.Income.netFactor(parent)).Mul(cadence).Add(otherNetDaily)

		benefitDays := seg.days
		if seg.filler {
			benefitDays = 0
		}

		out = append(out, domain.LeavePeriod{
			Parent:                   role,
			Start:                    cursor,
			End:                      cursor.AddDate(0, 0, segDays-1),
			Level:                    seg.level,
			DaysPerWeek:              daysPerWeek,
			BenefitDays:              benefitDays,
			DailyIncome:              b.Income.DailyIncome(parent),
			DailyBenefit:             benefit,
			DailyTopUp:               topUp,
			OtherParentMonthlyIncome: otherNetMonthly,
			OtherParentDailyIncome:   otherNetDaily,
			HouseholdDailyIncome:     household,
			IsPreferenceFiller:       seg.filler,
			Simultaneous:             simultaneous,
		})
		cursor = cursor.AddDate(0, 0, segDays)
	}
	return out
}

// mergeAdjacent joins consecutive periods that only differ by date range,
// so a parent's stretch of identical months reads as one period.
func mergeAdjacent(periods []domain.LeavePeriod) []domain.LeavePeriod {
	if len(periods) == 0 {
		return []domain.LeavePeriod{}
	}
	out := []domain.LeavePeriod{periods[0]}
	for _, p := range periods[1:] {
		last := &out[len(out)-1]
		if canMerge(*last, p) {
			last.End = p.End
			last.BenefitDays += p.BenefitDays
			continue
		}
		out = append(out, p)
	}
	return out
}

func canMerge(a, b domain.LeavePeriod) bool {
	return a.Parent == b.Parent &&
		a.Level == b.Level &&
		a.DaysPerWeek == b.DaysPerWeek &&
		a.Simultaneous == b.Simultaneous &&
		a.IsPreferenceFiller == b.IsPreferenceFiller &&
		a.IsInitialTenDayPeriod == b.IsInitialTenDayPeriod &&
		a.DailyTopUp.Equal(b.DailyTopUp) &&
		a.OtherParentMonthlyIncome.Equal(b.OtherParentMonthlyIncome) &&
		a.HouseholdDailyIncome.Equal(b.HouseholdDailyIncome) &&
		a.End.AddDate(0, 0, 1).Equal(b.Start)
}

// withdrawalDays converts a calendar span to benefit days at the given
// cadence, rounding half up.
func withdrawalDays(calDays, daysPerWeek int) int {
	return (calDays*daysPerWeek*2 + 7) / 14
}

func daysInclusive(start, end time.Time) int {
	return int(end.Sub(start).Hours()/24) + 1
}

func (s BuildSpec) parent(role domain.ParentRole) domain.ParentInput {
	if role == domain.Parent1 {
		return s.Parent1
	}
	return s.Parent2
}
