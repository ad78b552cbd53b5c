package planning

import (
	"reflect"
	"testing"
	"time"
)

func week(name, start string) Week {
	d, err := time.Parse("2006-01-02", start)
	if err != nil {
		panic(err)
	}
	return Week{Name: name, StartDate: d}
}

func TestDistribute_EvenSplit(t *testing.T) {
	t.Parallel()

	weeks := []Week{
		week("2025-W14", "2025-04-01"),
		week("2025-W15", "2025-04-07"),
		week("2025-W16", "2025-04-14"),
		week("2025-W17", "2025-04-21"),
	}
	dist := Distribute(700, weeks)

	if dist.Base != 175 || dist.FirstWeek != 175 || dist.Remainder != 0 {
		t.Fatalf("unexpected split: base=%d first=%d rem=%d", dist.Base, dist.FirstWeek, dist.Remainder)
	}
	for _, w := range dist.Weeks {
		if w.Value != 175 {
			t.Fatalf("week %s want=175 got=%d", w.Name, w.Value)
		}
	}
}

func TestDistribute_RemainderGoesToEarliestWeek(t *testing.T) {
	t.Parallel()

	// 乱序给入，最早的一周仍吸收余数
	weeks := []Week{
		week("2025-W16", "2025-04-14"),
		week("2025-W14", "2025-04-01"),
		week("2025-W15", "2025-04-07"),
	}
	dist := Distribute(100, weeks)

	if dist.Base != 33 || dist.FirstWeek != 34 || dist.Remainder != 1 {
		t.Fatalf("unexpected split: base=%d first=%d rem=%d", dist.Base, dist.FirstWeek, dist.Remainder)
	}
	wantOrder := []WeekValue{
		{Name: "2025-W14", Value: 34},
		{Name: "2025-W15", Value: 33},
		{Name: "2025-W16", Value: 33},
	}
	if !reflect.DeepEqual(dist.Weeks, wantOrder) {
		t.Fatalf("unexpected breakdown: %v", dist.Weeks)
	}
}

func TestDistribute_EmptyMatchSet(t *testing.T) {
	t.Parallel()

	dist := Distribute(500, nil)
	if len(dist.Weeks) != 0 || dist.Total != 500 {
		t.Fatalf("unexpected distribution for empty set: %+v", dist)
	}
}

func TestDistribute_SumAlwaysEqualsTotal(t *testing.T) {
	t.Parallel()

	starts := []string{"2025-04-01", "2025-04-07", "2025-04-14", "2025-04-21", "2025-04-28", "2025-05-05"}
	for n := 1; n <= len(starts); n++ {
		weeks := make([]Week, 0, n)
		for i := 0; i < n; i++ {
			weeks = append(weeks, week("W"+starts[i], starts[i]))
		}
		for total := int64(0); total <= 100; total++ {
			dist := Distribute(total, weeks)
			var sum int64
			for _, w := range dist.Weeks {
				sum += w.Value
			}
			if sum != total {
				t.Fatalf("n=%d total=%d: sum=%d", n, total, sum)
			}
			if dist.FirstWeek+dist.Base*int64(n-1) != total {
				t.Fatalf("n=%d total=%d: first+base*(n-1) != total", n, total)
			}
		}
	}
}

func TestDistribute_Deterministic(t *testing.T) {
	t.Parallel()

	weeks := []Week{
		week("2025-W14", "2025-04-01"),
		week("2025-W15", "2025-04-07"),
		week("2025-W16", "2025-04-14"),
	}
	first := Distribute(100, weeks)
	second := Distribute(100, weeks)
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("same input produced different distributions")
	}
}
