package effect

// Tuning overrides selected cell parameters of a profile. nil fields keep the
// profile value.
type Tuning struct {
	Lifetime      *float64 `yaml:"lifetime,omitempty"`
	LifetimeRange *float64 `yaml:"lifetimeRange,omitempty"`
	BirthRate     *float64 `yaml:"birthRate,omitempty"`
	Scale         *float64 `yaml:"scale,omitempty"`
	ScaleRange    *float64 `yaml:"scaleRange,omitempty"`
	Velocity      *float64 `yaml:"velocity,omitempty"`
	VelocityRange *float64 `yaml:"velocityRange,omitempty"`
	Spin          *float64 `yaml:"spin,omitempty"`
	SpinRange     *float64 `yaml:"spinRange,omitempty"`
	XAcceleration *float64 `yaml:"xAcceleration,omitempty"`
	YAcceleration *float64 `yaml:"yAcceleration,omitempty"`
	EmissionRange *float64 `yaml:"emissionRange,omitempty"`
}

// IsZero reports whether t overrides nothing.
func (t Tuning) IsZero() bool {
	return t == Tuning{}
}

// Apply returns c with every set field of t copied over.
func (t Tuning) Apply(c CellConfig) CellConfig {
	set := func(dst *float64, src *float64) {
		if src != nil {
			*dst = *src
		}
	}
	set(&c.Lifetime, t.Lifetime)
	set(&c.LifetimeRange, t.LifetimeRange)
	set(&c.BirthRate, t.BirthRate)
	set(&c.Scale, t.Scale)
	set(&c.ScaleRange, t.ScaleRange)
	set(&c.Velocity, t.Velocity)
	set(&c.VelocityRange, t.VelocityRange)
	set(&c.Spin, t.Spin)
	set(&c.SpinRange, t.SpinRange)
	set(&c.XAcceleration, t.XAcceleration)
	set(&c.YAcceleration, t.YAcceleration)
	set(&c.EmissionRange, t.EmissionRange)
	return c
}
