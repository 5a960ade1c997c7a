package main

import (
	"math/rand"
	"net/http"
	"sync"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/roylee0704/gron"
	"github.com/roylee0704/gron/xtime"

	log2 "github.com/bots-empire/referron-bot/internal/log"
	model2 "github.com/bots-empire/referron-bot/internal/model"
	"github.com/bots-empire/referron-bot/internal/msgs"
	services2 "github.com/bots-empire/referron-bot/internal/services"
	administrator2 "github.com/bots-empire/referron-bot/internal/services/administrator"
	"github.com/bots-empire/referron-bot/internal/services/distributor"
	"github.com/bots-empire/referron-bot/internal/services/ledger"
	"github.com/bots-empire/referron-bot/internal/services/payment"
	"github.com/bots-empire/referron-bot/internal/services/quota"
	"github.com/bots-empire/referron-bot/internal/store"
	"github.com/bots-empire/referron-bot/internal/utils"
)

func main() {
	rand.Seed(time.Now().Unix())

	logger := log2.NewDefaultLogger().Prefix("Referron Bot")
	log2.PrintLogo("Referron", []string{"3C91FF"})

	cfg, err := model2.LoadConfig()
	if err != nil {
		logger.Fatal("error load config: %s", err.Error())
	}

	model2.UploadAdminSettings()

	go startPrometheusHandler(logger, cfg.MetricsPort)

	userSrv := startBot(cfg, logger)
	model2.UploadUpdateStatistic(userSrv.Bot().Rdb)

	startHandlers(userSrv, logger)
}

func startBot(cfg *model2.Config, log log2.Logger) *services2.Users {
	globalBot := model2.NewBot(cfg)

	var err error
	globalBot.Bot, err = tgbotapi.NewBotAPI(globalBot.BotToken)
	if err != nil {
		log.Fatal("error start bot: %s", err.Error())
	}

	u := tgbotapi.NewUpdate(0)

	globalBot.Chanel = globalBot.Bot.GetUpdatesChan(u)

	globalBot.Rdb, err = model2.StartRedis(cfg.RedisAddr)
	if err != nil {
		log.Fatal("error start redis: %s", err.Error())
	}

	globalBot.DataBase, err = model2.UploadDataBase(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("error upload database: %s", err.Error())
	}

	dataStore := store.NewStore(globalBot.DataBase)
	service := msgs.NewService(globalBot, cfg.DevChatIDs)

	ledgerSrv := ledger.NewLedgerService(dataStore)
	quotaSrv := quota.NewQuotaEngine(dataStore)
	distributorSrv := distributor.NewDistributor(dataStore, service, log)
	paymentSrv := payment.NewPaymentService(dataStore, ledgerSrv)
	adminSrv := administrator2.NewAdminService(globalBot, dataStore, paymentSrv, service)
	userSrv := services2.NewUsersService(globalBot, ledgerSrv, quotaSrv, distributorSrv, paymentSrv, adminSrv, service)

	globalBot.MessageHandler = NewMessagesHandler(userSrv, adminSrv)
	globalBot.CallbackHandler = NewCallbackHandler(userSrv)
	globalBot.AdminMessageHandler = NewAdminMessagesHandler(adminSrv)

	log.Ok("Bot is running")
	return userSrv
}

func startPrometheusHandler(logger log2.Logger, port string) {
	http.Handle("/metrics", promhttp.Handler())
	logger.Ok("Metrics can be read from %s port", port)
	metricErr := http.ListenAndServe(":"+port, nil)
	if metricErr != nil {
		logger.Fatal("metrics stoped by metricErr: %s\n", metricErr.Error())
	}
}

func startHandlers(userSrv *services2.Users, logger log2.Logger) {
	wg := new(sync.WaitGroup)
	cron := gron.New()
	cron.AddFunc(gron.Every(1*xtime.Day).At("20:59"), userSrv.SendTodayUpdateMsg)

	wg.Add(1)
	go func(handler *services2.Users, wg *sync.WaitGroup) {
		defer wg.Done()
		handler.ActionsWithUpdates(logger, utils.NewSpreader(func() {
			model2.LossUserMessages.WithLabelValues(handler.Bot().BotLink).Inc()
		}))
	}(userSrv, wg)

	userSrv.Msgs.SendNotificationToDeveloper("Bot is restarted", false)

	go func() {
		time.Sleep(5 * time.Second)

		cron.Start()
	}()

	logger.Ok("All handlers are running")

	wg.Wait()
}

func NewMessagesHandler(userSrv *services2.Users, adminSrv *administrator2.Admin) *services2.MessagesHandlers {
	handle := services2.MessagesHandlers{
		Handlers: map[string]model2.Handler{},
	}

	handle.Init(userSrv, adminSrv)
	return &handle
}

func NewCallbackHandler(userSrv *services2.Users) *services2.CallBackHandlers {
	handle := services2.CallBackHandlers{
		Handlers: map[string]model2.Handler{},
	}

	handle.Init(userSrv)
	return &handle
}

func NewAdminMessagesHandler(adminSrv *administrator2.Admin) *administrator2.AdminMessagesHandlers {
	handle := administrator2.AdminMessagesHandlers{
		Handlers: map[string]model2.Handler{},
	}

	handle.Init(adminSrv)
	return &handle
}
