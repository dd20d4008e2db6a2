package initializers

import (
	"github.com/rain-knows/approval-system/config"
	"github.com/rain-knows/approval-system/db"
)

func InitDBConnection() {
	err := db.Connect(config.Conf.Database.Host, config.Conf.Database.Port, config.Conf.Database.Name,
		config.Conf.Database.User, config.Conf.Database.Password, *config.Conf.Database.DebugMode, *config.Conf.Database.MigrateOnStart)
	if err != nil {
		panic(err.Error())
	}

	if *config.Conf.Database.PreloadOnStart {
		db.InitPreload()
	}
}
