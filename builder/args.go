package builder

// dataSeparator is the src/dest separator the packaging tool expects in
// --add-data on goos.
func dataSeparator(goos string) string {
	if goos == "windows" {
		return ";"
	}
	return ":"
}

// PackagingArgs returns the arguments passed to the venv interpreter to run
// the packaging tool.
func PackagingArgs(cfg *Config, goos string) []string {
	args := []string{"-m", cfg.PackagerModule}
	if cfg.OneFile {
		args = append(args, "--onefile")
	}
	if cfg.Windowed {
		args = append(args, "--windowed")
	}
	args = append(args, "--name", cfg.AppName)
	if cfg.DistDir != "" {
		args = append(args, "--distpath", cfg.DistDir)
	}
	if cfg.BuildDir != "" {
		args = append(args, "--workpath", cfg.BuildDir)
	}
	for _, d := range cfg.DataFiles {
		args = append(args, "--add-data", d.Source+dataSeparator(goos)+d.Dest)
	}
	for _, imp := range cfg.HiddenImports {
		args = append(args, "--hidden-import", imp)
	}
	if cfg.Clean {
		args = append(args, "--clean")
	}
	if cfg.LogLevel != "" {
		args = append(args, "--log-level", cfg.LogLevel)
	}
	return append(args, cfg.EntryPoint)
}

// installSteps are the pip invocations of the install phase, in order.
func installSteps(cfg *Config) [][]string {
	steps := [][]string{
		{"-m", "pip", "install", "--upgrade", "pip"},
	}
	if cfg.Requirements != "" {
		steps = append(steps, []string{"-m", "pip", "install", "-r", cfg.Requirements})
	}
	if cfg.Packager != "" {
		steps = append(steps, []string{"-m", "pip", "install", cfg.Packager})
	}
	return steps
}
