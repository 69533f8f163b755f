package databricks

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/robfig/cron/v3"
)

var quartzParser = cron.NewParser(cron.Second | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)

// NextRun returns the first fire time of s after t. Databricks schedules use
// Quartz syntax: a seconds field first, an optional trailing year field and
// days of the week numbered 1 (Sunday) to 7. Quartz-only tokens such as L, W
// and # are not supported and yield an error.
func NextRun(s Schedule, t time.Time) (time.Time, error) {
	fields := strings.Fields(s.QuartzCronExpression)
	switch len(fields) {
	case 6:
	case 7:
		if fields[6] != "*" {
			return time.Time{}, fmt.Errorf("year field %q is not supported", fields[6])
		}
		fields = fields[:6]
	default:
		return time.Time{}, fmt.Errorf("expected 6 or 7 fields in %q", s.QuartzCronExpression)
	}

	dow, err := quartzDowToCron(fields[5])
	if err != nil {
		return time.Time{}, err
	}
	fields[5] = dow

	spec := strings.Join(fields, " ")
	if s.TimezoneID != "" {
		spec = "CRON_TZ=" + s.TimezoneID + " " + spec
	}

	schedule, err := quartzParser.Parse(spec)
	if err != nil {
		return time.Time{}, err
	}
	return schedule.Next(t), nil
}

// quartzDowToCron shifts numeric days of the week from Quartz (1-7) to cron
// (0-6). Step sizes after a slash are left alone.
func quartzDowToCron(field string) (string, error) {
	parts := strings.Split(field, ",")
	for i, part := range parts {
		base, step, hasStep := strings.Cut(part, "/")
		bounds := strings.Split(base, "-")
		for j, b := range bounds {
			n, err := strconv.Atoi(b)
			if err != nil {
				continue // "*", "?" or a day name
			}
			if n < 1 || n > 7 {
				return "", fmt.Errorf("day of week %d out of range", n)
			}
			bounds[j] = strconv.Itoa(n - 1)
		}
		parts[i] = strings.Join(bounds, "-")
		if hasStep {
			parts[i] += "/" + step
		}
	}
	return strings.Join(parts, ","), nil
}
