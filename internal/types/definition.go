package types

// CheckDefinition represents a custom hardening check loaded from a YAML
// file via --extra-checks. Each definition maps onto one engine check; a
// definition with alternatives becomes an any-of composite.
type CheckDefinition struct {
	// Name is the option name to check (e.g. CONFIG_FOO, kernel.sysctl_key).
	Name string `yaml:"name" validate:"required,kharden_name"`

	// Source is the data source the option lives in.
	Source string `yaml:"source" validate:"required,oneof=kconfig cmdline sysctl"`

	// Expected is the desired value, or one of the sentinels
	// "is not set", "is present", "is not off".
	Expected string `yaml:"expected" validate:"required"`

	// Category is the rationale tag (e.g. "cut_attack_surface").
	Category string `yaml:"category" validate:"required,oneof=self_protection security_policy cut_attack_surface harden_userspace"`

	// Justification names the origin of the recommendation.
	Justification string `yaml:"justification" validate:"required"`

	// Alternatives lists options that satisfy the requirement instead of
	// the primary one (any-of semantics).
	Alternatives []AlternativeDefinition `yaml:"alternatives,omitempty" validate:"omitempty,dive"`
}

// AlternativeDefinition is a secondary option accepted in place of a
// definition's primary option.
type AlternativeDefinition struct {
	// Name is the alternative option name.
	Name string `yaml:"name" validate:"required,kharden_name"`

	// Source is the alternative's data source.
	Source string `yaml:"source" validate:"required,oneof=kconfig cmdline sysctl"`

	// Expected is the alternative's desired value or sentinel.
	Expected string `yaml:"expected" validate:"required"`
}
