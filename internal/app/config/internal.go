package config

type InternalConfig struct {
	App        App
	Classifier AppClassifier
	JWT        AppJWT
	Wizard     AppWizard
	Alerts     AppAlerts
}

type App struct {
	Env                        string
	Port                       string
	Version                    string
	Address                    string
	Timezone                   string
	EndpointPrefix             string
	CorsAllowedOrigins         []string
	MaxRequests                int
	ShutdownTimeoutInSeconds   int
	MaxTimeRequestsPerSeconds  int
	RequestBodyLimitInMegabyte int
	// SubmitRatePerMinute bounds assessment submissions per client
	SubmitRatePerMinute int
	SubmitBurst         int
	// SubmitQuotaPerHour bounds submissions per subject across replicas
	SubmitQuotaPerHour int
}

type AppClassifier struct {
	BaseUrl          string
	TimeoutInSeconds int
}

type AppJWT struct {
	Secret        string
	ExpTimeInHour int
}

type AppWizard struct {
	SessionTTLInMinutes int
	LockTTLInSeconds    int
}

type AppAlerts struct {
	HighRiskEnabled bool
	Queue           string
}
