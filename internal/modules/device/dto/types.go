package dto

type DriverInfo struct {
	Name         string
	Version      string
	Enabled      bool
	Binary       string
	Capabilities []string
}

type DoctorResult struct {
	Name            string
	ChecksumValid   bool
	BinaryReachable bool
	LifecycleOK     bool
	HardwareOK      bool
	Device          string
	Error           string
}

type PulseInput struct {
	Driver    string
	Intensity float64
	Sharpness float64
}

type PulseOutput struct {
	Driver   string
	Accepted bool
	Message  string
}
