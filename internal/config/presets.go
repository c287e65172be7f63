package config

import (
	"math"
	"sort"

	"github.com/san-kum/attsim/internal/attitude"
)

var (
	presetInertia = attitude.Diag(attitude.Vec3{10, 12, 8})
	quarterTurnZ  = attitude.FromAxisAngle(attitude.Vec3{0, 0, 1}, math.Pi/2)
)

var Presets = map[string]*Config{
	"detumble": {
		Name: "detumble", Dynamics: DynamicsRigid, Integrator: IntegratorRK4,
		Controller: ControllerPD, Sensor: SensorIdeal, Actuator: ActuatorIdeal, Reference: ReferenceFixed,
		Dt: 0.01, NumSteps: 6000,
		Q0: attitude.Identity, W0: attitude.Vec3{0.2, -0.1, 0.15}, Inertia: presetInertia,
		QRef: attitude.Identity, KdRate: attitude.Vec3{5, 5, 5},
	},
	"hold": {
		Name: "hold", Dynamics: DynamicsRigid, Integrator: IntegratorRK4,
		Controller: ControllerPD, Sensor: SensorIdeal, Actuator: ActuatorIdeal, Reference: ReferenceFixed,
		Dt: 0.01, NumSteps: 4000,
		Q0: attitude.FromAxisAngle(attitude.Vec3{1, 1, 1.4}, 0.15),
		Inertia: presetInertia, QRef: attitude.Identity,
		KpAtt: attitude.Vec3{DefaultKp, DefaultKp, DefaultKp}, KdRate: attitude.Vec3{DefaultKd, DefaultKd, DefaultKd},
		ControlRateHz: 10,
	},
	"slew": {
		Name: "slew", Dynamics: DynamicsRigid, Integrator: IntegratorRK4,
		Controller: ControllerLQR, Sensor: SensorIdeal, Actuator: ActuatorIdeal, Reference: ReferenceFixed,
		Dt: 0.01, NumSteps: 6000,
		Q0: attitude.Identity, Inertia: presetInertia, QRef: quarterTurnZ,
		LQRWeights: LQRWeights{
			Q: attitude.Vec3{1, 1, 1},
			W: attitude.Vec3{10, 10, 10},
			R: attitude.Vec3{1, 1, 1},
		},
		ControlRateHz: 20,
	},
	"spin": {
		Name: "spin", Dynamics: DynamicsRigid, Integrator: IntegratorRK4,
		Controller: ControllerPD, Sensor: SensorIdeal, Actuator: ActuatorIdeal, Reference: ReferenceSpin,
		Dt: 0.01, NumSteps: 4000,
		Q0: attitude.Identity, Inertia: presetInertia,
		WRef: attitude.Vec3{0, 0, 0.1}, KdRate: attitude.Vec3{5, 5, 5},
	},
	"ballistic": {
		Name: "ballistic", Dynamics: DynamicsKinematic, Integrator: IntegratorRK4,
		Controller: ControllerZero, Sensor: SensorIdeal, Actuator: ActuatorIdeal, Reference: ReferenceFixed,
		Dt: 0.01, NumSteps: 3000,
		Q0: attitude.Identity, W0: attitude.Vec3{0.05, 0.02, 0.1}, Inertia: presetInertia,
		QRef: attitude.Identity,
	},
	"wheels": {
		Name: "wheels", Dynamics: DynamicsRigid, Integrator: IntegratorRK4,
		Controller: ControllerPD, Sensor: SensorIdeal, Actuator: ActuatorReactionWheels, Reference: ReferenceFixed,
		Dt: 0.01, NumSteps: 6000,
		Q0: attitude.Identity, W0: attitude.Vec3{0.05, -0.03, 0.02}, Inertia: presetInertia,
		QRef: quarterTurnZ,
		KpAtt: attitude.Vec3{DefaultKp, DefaultKp, DefaultKp}, KdRate: attitude.Vec3{DefaultKd, DefaultKd, DefaultKd},
		Wheels: WheelConfig{
			Axes:       []attitude.Vec3{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}},
			Inertias:   []float64{0.02, 0.02, 0.02},
			MaxTorques: []float64{0.1, 0.1, 0.1},
			MaxSpeeds:  []float64{6000, 6000, 6000},
		},
	},
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(name string) *Config {
	cfg, ok := Presets[name]
	if !ok {
		return nil
	}
	return cfg.Clone()
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
