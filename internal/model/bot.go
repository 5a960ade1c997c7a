package model

import (
	"database/sql"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/go-redis/redis"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	_ "github.com/lib/pq"
	"github.com/pkg/errors"
	"github.com/pressly/goose/v3"

	"github.com/bots-empire/referron-bot/db/local"
)

const (
	dbDriver = "postgres"

	dbConnAttempts = 5
	dbConnBackoff  = 3 * time.Second
)

type Bot struct {
	Bot      *tgbotapi.BotAPI
	Chanel   tgbotapi.UpdatesChannel
	Rdb      *redis.Client
	DataBase *sql.DB

	MessageHandler      GlobalHandlers
	CallbackHandler     GlobalHandlers
	AdminMessageHandler GlobalHandlers

	BotToken string
	BotLink  string
	Texts    map[string]string
}

type GlobalHandlers interface {
	GetHandler(command string) Handler
}

type Handler func(situation *Situation) error

func NewBot(cfg *Config) *Bot {
	return &Bot{
		BotToken: cfg.BotToken,
		BotLink:  cfg.BotLink,
		Texts:    defaultTexts,
	}
}

// UploadDataBase dials postgres with a bounded number of attempts and runs
// the embedded goose migrations. Connection retries live here and only here,
// every other layer reports a store failure instead of redialing.
func UploadDataBase(databaseURL string) (*sql.DB, error) {
	var (
		dataBase *sql.DB
		err      error
	)

	for attempt := 1; attempt <= dbConnAttempts; attempt++ {
		dataBase, err = openDataBase(databaseURL)
		if err == nil {
			break
		}

		log.Printf("database not ready (attempt %d/%d): %s", attempt, dbConnAttempts, err.Error())
		time.Sleep(dbConnBackoff)
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed upload database")
	}

	goose.SetBaseFS(local.EmbedMigrations)

	if err := goose.SetDialect("postgres"); err != nil {
		return nil, errors.Wrap(err, "failed set goose dialect")
	}

	if err := goose.Up(dataBase, "migrations"); err != nil {
		return nil, errors.Wrap(err, "failed run migrations")
	}

	return dataBase, nil
}

func openDataBase(databaseURL string) (*sql.DB, error) {
	dataBase, err := sql.Open(dbDriver, databaseURL)
	if err != nil {
		return nil, errors.Wrap(err, "open connection")
	}

	dataBase.SetMaxOpenConns(10)
	dataBase.SetConnMaxIdleTime(30 * time.Second)

	if err := dataBase.Ping(); err != nil {
		_ = dataBase.Close()
		return nil, errors.Wrap(err, "ping database")
	}

	return dataBase, nil
}

// StartRedis dials redis with the same bounded retry policy as postgres.
func StartRedis(addr string) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: "", // no password set
		DB:       0,  // use default DB
	})

	var err error
	for attempt := 1; attempt <= dbConnAttempts; attempt++ {
		if _, err = rdb.Ping().Result(); err == nil {
			return rdb, nil
		}

		log.Printf("redis not ready (attempt %d/%d): %s", attempt, dbConnAttempts, err.Error())
		time.Sleep(dbConnBackoff)
	}

	return nil, errors.Wrap(err, "failed start redis")
}

func (b *Bot) GetBot() *tgbotapi.BotAPI {
	return b.Bot
}

func (b *Bot) GetDataBase() *sql.DB {
	return b.DataBase
}

func (b *Bot) Text(key string, values ...interface{}) string {
	formatText, ok := b.Texts[key]
	if !ok {
		return key
	}
	return fmt.Sprintf(formatText, values...)
}

// ReferralLink renders the deep link a user shares to earn rewards.
func (b *Bot) ReferralLink(code string) string {
	return fmt.Sprintf("https://%s?start=%s", b.BotLink, code)
}

// GetCommandFromText extracts the leading slash command from a message. Text
// without one falls through to the caller's level lookup.
func (b *Bot) GetCommandFromText(message *tgbotapi.Message) (string, error) {
	if message == nil || !strings.HasPrefix(message.Text, "/") {
		return "", ErrCommandNotConverted
	}

	command := strings.Fields(message.Text)[0]
	if i := strings.Index(command, "@"); i != -1 {
		command = command[:i]
	}

	return command, nil
}

// BlockUser flips an account to the deleted status so that audience
// selection stops picking it. Called when telegram reports the user blocked
// the bot.
func (b *Bot) BlockUser(userID int64) error {
	_, err := b.GetDataBase().Exec(`
UPDATE referron.accounts
	SET status = $1
WHERE id = $2`,
		StatusDeleted,
		userID)

	return errors.Wrap(err, "failed block user")
}
