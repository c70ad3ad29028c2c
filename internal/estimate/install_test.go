package estimate

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestInstallCost_Percent(t *testing.T) {
	got := InstallCost(InstallModePercent, InstallParams{Percent: 10}, Totals{Subtotal: 700})
	require.Equal(t, 70.0, got)

	require.Equal(t, 0.0, InstallCost(InstallModePercent, InstallParams{}, Totals{Subtotal: 700}))
}

func TestInstallCost_PerSignExplicit(t *testing.T) {
	got := InstallCost(InstallModePerSign, InstallParams{PerSign: 5}, Totals{SignCount: 10})
	require.Equal(t, 50.0, got)
}

func TestInstallCost_PerSignAutoFallback(t *testing.T) {
	totals := Totals{SignCount: 10, AutoAmountPerSign: 42}

	// The accumulated flat amount is used as-is, not multiplied by count.
	got := InstallCost(InstallModePerSign, InstallParams{AutoEnabled: true}, totals)
	require.Equal(t, 42.0, got)

	// Without auto mode the fallback is off.
	require.Equal(t, 0.0, InstallCost(InstallModePerSign, InstallParams{}, totals))

	// An explicit rate wins over the accumulator.
	got = InstallCost(InstallModePerSign, InstallParams{PerSign: 5, AutoEnabled: true}, totals)
	require.Equal(t, 50.0, got)
}

func TestInstallCost_PerArea(t *testing.T) {
	got := InstallCost(InstallModePerArea, InstallParams{PerArea: 2}, Totals{Area: 100})
	require.Equal(t, 200.0, got)
}

func TestInstallCost_HoursExplicit(t *testing.T) {
	got := InstallCost(InstallModeHours, InstallParams{Hours: 3, HourlyRate: 50}, Totals{})
	require.Equal(t, 150.0, got)
}

func TestInstallCost_HoursAutoFallback(t *testing.T) {
	totals := Totals{AutoHours: 4}

	got := InstallCost(InstallModeHours, InstallParams{HourlyRate: 50, AutoEnabled: true}, totals)
	require.Equal(t, 200.0, got)

	require.Equal(t, 0.0, InstallCost(InstallModeHours, InstallParams{HourlyRate: 50}, totals))
}

func TestInstallCost_None(t *testing.T) {
	totals := Totals{Subtotal: 700, SignCount: 10, Area: 100, AutoAmountPerSign: 42, AutoHours: 4}
	p := InstallParams{Percent: 10, PerSign: 5, PerArea: 2, Hours: 3, HourlyRate: 50, AutoEnabled: true}

	require.Equal(t, 0.0, InstallCost(InstallModeNone, p, totals))
	require.Equal(t, 0.0, InstallCost(InstallMode("bogus"), p, totals))
}
