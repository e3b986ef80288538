package domain

// SystemInfo is the once-per-run snapshot of host identity shown in report
// headers. Fields hold best-effort values; a probe that fails leaves
// "unknown" rather than failing the run.
type SystemInfo struct {
	Kernel      string `json:"kernel" yaml:"kernel"`
	Distro      string `json:"distro" yaml:"distro"`
	Desktop     string `json:"desktop" yaml:"desktop"`
	AudioServer string `json:"audio_server" yaml:"audio_server"`
	GPUDriver   string `json:"gpu_driver,omitempty" yaml:"gpu_driver,omitempty"`
}
