// defaults.go default values for settings
package conf

import (
	"github.com/spf13/viper"
)

// Sets default values for the configuration.
func setDefaultConfig() {
	viper.SetDefault("debug", false)

	viper.SetDefault("main.name", "TrailCam")
	viper.SetDefault("main.log.enabled", true)
	viper.SetDefault("main.log.path", "trailcam.log")
	viper.SetDefault("main.log.maxsize", 10)
	viper.SetDefault("main.log.maxbackups", 3)
	viper.SetDefault("main.log.maxage", 28)

	// La Grange / Fayette County, TX
	viper.SetDefault("site.latitude", 29.905)
	viper.SetDefault("site.longitude", -96.877)
	viper.SetDefault("site.timezone", "America/Chicago")

	viper.SetDefault("input.imagesdir", "images")
	viper.SetDefault("input.predictions", "speciesnet-results.json")
	viper.SetDefault("input.stamps", "stamp_data.csv")

	viper.SetDefault("classifier.animalthreshold", 0.20)
	viper.SetDefault("classifier.humanthreshold", 0.30)
	viper.SetDefault("classifier.vehiclethreshold", 0.30)

	viper.SetDefault("species.strongthreshold", 0.60)
	viper.SetDefault("species.fallbackthreshold", 0.35)
	viper.SetDefault("species.suppressdomestic", true)

	viper.SetDefault("events.gapminutes", 15.0)
	viper.SetDefault("events.maxmembers", 200)

	viper.SetDefault("output.file.enabled", true)
	viper.SetDefault("output.file.path", ".")
	viper.SetDefault("output.file.eventsjson", "docs/events.json")
	viper.SetDefault("output.file.updateexisting", false)

	viper.SetDefault("output.sqlite.enabled", false)
	viper.SetDefault("output.sqlite.path", "trailcam.db")

	viper.SetDefault("fetch.ftp.enabled", false)
	viper.SetDefault("fetch.ftp.host", "")
	viper.SetDefault("fetch.ftp.port", 21)
	viper.SetDefault("fetch.ftp.basepath", "/")
	viper.SetDefault("fetch.ftp.timeout", 30)

	viper.SetDefault("fetch.spypoint.enabled", false)
	viper.SetDefault("fetch.spypoint.baseurl", "https://restapi.spypoint.com")
	viper.SetDefault("fetch.spypoint.maxperrun", 400)
	viper.SetDefault("fetch.spypoint.skipifnodate", true)
}
