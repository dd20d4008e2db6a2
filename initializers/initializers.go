package initializers

import (
	"context"

	"github.com/rain-knows/approval-system/config"
	"github.com/rain-knows/approval-system/fiberlog"
	approvalhandler "github.com/rain-knows/approval-system/lib/approval"
	approvaltypehandler "github.com/rain-knows/approval-system/lib/approval-type"
	authhandler "github.com/rain-knows/approval-system/lib/auth"
	departmentprovider "github.com/rain-knows/approval-system/lib/dicts/department"
	roleprovider "github.com/rain-knows/approval-system/lib/dicts/role"
	pdfexport "github.com/rain-knows/approval-system/lib/export/pdf"
	xlsexport "github.com/rain-knows/approval-system/lib/export/xls"
	notificationhandler "github.com/rain-knows/approval-system/lib/notification"
	usershandler "github.com/rain-knows/approval-system/lib/users"
	workflowhandler "github.com/rain-knows/approval-system/lib/workflow"
)

var LoggerConfig *fiberlog.Config

func InitAllServices(ctx context.Context) {
	LoggerConfig = InitLogger()
	config.InitConfig()
	InitDBConnection()
	InitS3()
	InitSmtp()
	notificationhandler.NewHandler()
	authhandler.NewHandler()
	usershandler.NewHandler()
	departmentprovider.NewHandler()
	roleprovider.NewHandler()
	approvaltypehandler.NewHandler()
	workflowhandler.NewHandler()
	approvalhandler.NewHandler()
	xlsexport.NewHandler()
	pdfexport.NewHandler()
}
