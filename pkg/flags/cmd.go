package flags

// This file contains all the flags used in the cmd package.

type Flag struct {
	Full  string
	Short string
}

var (
	// Parent flags
	ConfigFlag = Flag{Full: "config", Short: "g"}

	// Connection flags, override the config file for the selected shell
	HostFlag     = Flag{Full: "host", Short: "H"}
	PortFlag     = Flag{Full: "port", Short: "p"}
	PrefixFlag   = Flag{Full: "prefix"}
	UserFlag     = Flag{Full: "user", Short: "u"}
	PasswordFlag = Flag{Full: "password", Short: "w"}
	ClusterFlag  = Flag{Full: "cluster", Short: "c"}
	CurlFlag     = Flag{Full: "curl"}
	SSOFlag      = Flag{Full: "sso"}

	// Profile flags
	ServiceFlag = Flag{Full: "service", Short: "s"}
)
