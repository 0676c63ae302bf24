package config

type InternalConfig struct {
	App             App
	JWT             AppJWT
	Mailer          AppMailer
	Minio           AppMinio
	RabbitMQ        AppRabbitMQ
	Messaging       AppMessaging
	LicenseRegistry AppLicenseRegistry
	Worker          AppWorker
}

type App struct {
	Env                                      string
	Port                                     string
	Version                                  string
	Address                                  string
	BaseUrl                                  string
	FrontendDomain                           string
	EndpointPrefix                           string
	MaxRequests                              int
	ShutdownTimeoutInSeconds                 int
	MaxTimeRequestsPerSeconds                int
	RequestBodyLimitInMegabyte               int
	LoginSessionExpiredTimeInHours           int
	DocumentMaxUploadSizeInMB                int64
	MinioPreSignedUrlObjectExpiryTimeInHours int
}

type AppJWT struct {
	Secret string
}

type AppMailer struct {
	EmailSender string
}

type AppMinio struct {
	BucketName string
}

type AppRabbitMQ struct {
	MailerQueue string
}

type AppMessaging struct {
	MaxMessagesPerWindow    int
	WindowInSeconds         int
	SocketEventsPerSecond   int
	SocketEventBurst        int
	SocketWriteWaitInSecond int
	SocketPongWaitInSecond  int
}

type AppLicenseRegistry struct {
	BaseUrl               string
	ApiKey                string
	RequestTimeoutSeconds int
	RetryCount            int
}

type AppWorker struct {
	ReminderCronSpec             string
	StaleSwitchRequestAgeInHours int
	ReminderLockTTLInSeconds     int
	ReminderBatchSize            int
}
