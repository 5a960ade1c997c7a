package model

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"sync"

	"github.com/go-redis/redis"
)

const (
	assetsPath   = "assets"
	settingsPath = assetsPath + "/settings.json"
)

type Settings struct {
	AdminID map[int64]*AdminUser `json:"admin_id,omitempty"`
	Params  *Params              `json:"params,omitempty"`

	MaintenanceMode bool `json:"maintenance_mode,omitempty"`
}

type AdminUser struct {
	FirstName string `json:"first_name,omitempty"`
}

type Params struct {
	ReferralReward    int   `json:"referral_reward,omitempty"`
	RedeemCost        int   `json:"redeem_cost,omitempty"`
	FreeFanout        int   `json:"free_fanout,omitempty"`
	PaidFanout        int   `json:"paid_fanout,omitempty"`
	ImpressionPrice   int64 `json:"impression_price,omitempty"`
	AudiencePoolLimit int   `json:"audience_pool_limit,omitempty"`
	TopListSize       int   `json:"top_list_size,omitempty"`

	Currency string `json:"currency,omitempty"`
}

var AdminSettings *Settings

func UploadAdminSettings() {
	settings := &Settings{}

	data, err := os.ReadFile(settingsPath)
	if err == nil {
		if err = json.Unmarshal(data, settings); err != nil {
			fmt.Println(err)
		}
	}

	fillNilSettings(settings)

	AdminSettings = settings
	SaveAdminSettings()
}

func fillNilSettings(settings *Settings) {
	if settings.AdminID == nil {
		settings.AdminID = make(map[int64]*AdminUser)
	}

	if settings.Params == nil {
		settings.Params = &Params{}
	}

	params := settings.Params
	if params.ReferralReward == 0 {
		params.ReferralReward = 10
	}
	if params.RedeemCost == 0 {
		params.RedeemCost = 50
	}
	if params.FreeFanout == 0 {
		params.FreeFanout = 3
	}
	if params.PaidFanout == 0 {
		params.PaidFanout = 30
	}
	if params.ImpressionPrice == 0 {
		params.ImpressionPrice = 1
	}
	if params.AudiencePoolLimit == 0 {
		params.AudiencePoolLimit = 50
	}
	if params.TopListSize == 0 {
		params.TopListSize = 10
	}
	if params.Currency == "" {
		params.Currency = "credits"
	}
}

func SaveAdminSettings() {
	data, err := json.MarshalIndent(AdminSettings, "", "  ")
	if err != nil {
		panic(err)
	}

	if err = os.MkdirAll(assetsPath, 0744); err != nil {
		panic(err)
	}

	if err = os.WriteFile(settingsPath, data, 0600); err != nil {
		panic(err)
	}
}

func (s *Settings) GetParams() *Params {
	return s.Params
}

func (s *Settings) CheckAdmin(userID int64) bool {
	_, exist := s.AdminID[userID]
	return exist
}

func (s *Settings) UnderMaintenance() bool {
	return s.MaintenanceMode
}

// ----------------------------------------------------
//
// Update Statistic
//
// ----------------------------------------------------

const updateStatisticKey = "update_statistic"

type UpdateInfo struct {
	Mu      *sync.Mutex
	Counter int
	Day     int
}

var UpdateStatistic *UpdateInfo

func UploadUpdateStatistic(rdb *redis.Client) {
	info := &UpdateInfo{}
	info.Mu = new(sync.Mutex)
	strStatistic, err := rdb.Get(updateStatisticKey).Result()
	if err != nil {
		UpdateStatistic = info
		return
	}

	data := strings.Split(strStatistic, "?")
	if len(data) != 2 {
		UpdateStatistic = info
		return
	}
	info.Counter, _ = strconv.Atoi(data[0])
	info.Day, _ = strconv.Atoi(data[1])
	UpdateStatistic = info
}

func SaveUpdateStatistic(rdb *redis.Client) {
	strStatistic := strconv.Itoa(UpdateStatistic.Counter) + "?" + strconv.Itoa(UpdateStatistic.Day)
	_, err := rdb.Set(updateStatisticKey, strStatistic, 0).Result()
	if err != nil {
		log.Println(err)
	}
}
