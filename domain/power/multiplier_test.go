package power

import (
	"errors"
	"math"
	"testing"

	"gopower/domain/core"
	"gopower/domain/design"
)

func TestMultiplierAt_TwoTailed(t *testing.T) {
	// Central t quantiles at df=398: t(0.975) = 1.9659, |t(0.20)| = 0.8425.
	m, t1, t2 := multiplierAt(0.05, 0.80, 398, 2)
	if math.Abs(t1-1.9659) > 0.001 {
		t.Errorf("T1 = %.4f, want 1.9659", t1)
	}
	if math.Abs(t2-0.8425) > 0.001 {
		t.Errorf("T2 = %.4f, want 0.8425", t2)
	}
	if math.Abs(m-(t1+t2)) > 1e-12 {
		t.Errorf("M = %.6f, want T1+T2 = %.6f", m, t1+t2)
	}
}

func TestMultiplierAt_OneTailed(t *testing.T) {
	// One-tailed keeps alpha whole: t(0.95, 398) = 1.6487.
	_, t1, _ := multiplierAt(0.05, 0.80, 398, 1)
	if math.Abs(t1-1.6487) > 0.001 {
		t.Errorf("One-tailed T1 = %.4f, want 1.6487", t1)
	}
}

func TestMultiplierAt_LowPowerSubtracts(t *testing.T) {
	m, t1, t2 := multiplierAt(0.05, 0.30, 100, 2)
	if math.Abs(m-(t1-t2)) > 1e-12 {
		t.Errorf("Below power 0.5, M = %.4f, want T1-T2 = %.4f", m, t1-t2)
	}

	// T2 vanishes exactly at the midpoint.
	_, _, mid := multiplierAt(0.05, 0.50, 100, 2)
	if math.Abs(mid) > 1e-9 {
		t.Errorf("T2 at power 0.5 = %g, want 0", mid)
	}
}

func TestMultiplierAt_SmallDF(t *testing.T) {
	// t(0.975, 4) = 2.7764, t(0.80, 4) = 0.9410.
	m, t1, t2 := multiplierAt(0.05, 0.80, 4, 2)
	if math.Abs(t1-2.7764) > 0.001 {
		t.Errorf("T1 at df=4 = %.4f, want 2.7764", t1)
	}
	if math.Abs(t2-0.9410) > 0.001 {
		t.Errorf("T2 at df=4 = %.4f, want 0.9410", t2)
	}
	if math.Abs(m-3.7174) > 0.002 {
		t.Errorf("M at df=4 = %.4f, want 3.7174", m)
	}
}

func TestComputed_MatchesQuantileSum(t *testing.T) {
	// For IRA at n=400: df = 398, M = t(0.975) + |t(0.20)| = 2.8085. The MDES
	// must factor as M * sqrt(variance), so recovering M from the reported
	// effect size has to land on the same number.
	eng := NewEngine()

	mult, err := eng.Computed("ira", design.Params{"n": 400})
	if err != nil {
		t.Fatal(err)
	}
	if mult.DF != 398 {
		t.Errorf("df = %d, want 398", mult.DF)
	}
	if math.Abs(mult.M-2.8085) > 0.005 {
		t.Errorf("M = %.4f, want 2.8085", mult.M)
	}

	delta, err := eng.EffectSize("ira", design.Params{"n": 400})
	if err != nil {
		t.Fatal(err)
	}
	recovered := delta * math.Sqrt(0.5*0.5*400)
	if math.Abs(recovered-mult.M) > 0.005 {
		t.Errorf("M recovered from MDES = %.4f, reported %.4f", recovered, mult.M)
	}
}

func TestBisect(t *testing.T) {
	t.Run("finds monotone root", func(t *testing.T) {
		root, err := bisect(func(x float64) float64 { return x*x - 2 }, 0, 2, 1e-10, "test")
		if err != nil {
			t.Fatal(err)
		}
		if math.Abs(root-math.Sqrt2) > 1e-9 {
			t.Errorf("root = %.12f, want sqrt(2)", root)
		}
	})

	t.Run("decreasing orientation", func(t *testing.T) {
		root, err := bisect(func(x float64) float64 { return 10 - x }, 0, 100, 1e-10, "test")
		if err != nil {
			t.Fatal(err)
		}
		if math.Abs(root-10) > 1e-8 {
			t.Errorf("root = %.12f, want 10", root)
		}
	})

	t.Run("no sign change", func(t *testing.T) {
		_, err := bisect(func(x float64) float64 { return x + 1 }, 0, 5, 1e-10, "test")
		if !errors.Is(err, core.ErrNonConvergence) {
			t.Errorf("Expected non-convergence, got %v", err)
		}
	})

	t.Run("nan objective", func(t *testing.T) {
		_, err := bisect(func(x float64) float64 { return math.NaN() }, 0, 5, 1e-10, "test")
		if !errors.Is(err, core.ErrNonFinite) {
			t.Errorf("Expected non-finite, got %v", err)
		}
	})

	t.Run("exact endpoint root", func(t *testing.T) {
		root, err := bisect(func(x float64) float64 { return x }, 0, 5, 1e-10, "test")
		if err != nil || root != 0 {
			t.Errorf("root = %v, err = %v, want 0", root, err)
		}
	})
}
