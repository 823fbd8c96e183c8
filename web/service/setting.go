package service

import (
	"strconv"
	"strings"

	"shopfront/config"
	"shopfront/database"
	"shopfront/database/model"
	"shopfront/util/common"
	"shopfront/util/random"
)

// Runtime-tunable settings live in the settings table; a missing row falls
// back to its default here.
var defaultValueMap = map[string]string{
	"webListen":           "",
	"webPort":             "8080",
	"secret":              random.Seq(32),
	"sessionMaxAge":       "60",
	"uploadFolder":        config.GetUploadFolder(),
	"uploadExtensions":    "png,jpg,jpeg,gif,webp",
	"defaultProductImage": model.DefaultProductImage,
	"homeBroadcasts":      "3",
}

type SettingService struct{}

func (s *SettingService) getSetting(key string) (*model.Setting, error) {
	db := database.GetDB()
	setting := &model.Setting{}
	err := db.Model(model.Setting{}).Where("key = ?", key).First(setting).Error
	if err != nil {
		return nil, err
	}
	return setting, nil
}

func (s *SettingService) saveSetting(key string, value string) error {
	setting, err := s.getSetting(key)
	db := database.GetDB()
	if database.IsNotFound(err) {
		return db.Create(&model.Setting{
			Key:   key,
			Value: value,
		}).Error
	} else if err != nil {
		return err
	}
	setting.Value = value
	return db.Save(setting).Error
}

func (s *SettingService) getString(key string) (string, error) {
	setting, err := s.getSetting(key)
	if database.IsNotFound(err) {
		value, ok := defaultValueMap[key]
		if !ok {
			return "", common.NewErrorf("key <%v> not in defaultValueMap", key)
		}
		return value, nil
	} else if err != nil {
		return "", err
	}
	return setting.Value, nil
}

func (s *SettingService) setString(key string, value string) error {
	return s.saveSetting(key, value)
}

func (s *SettingService) getInt(key string) (int, error) {
	str, err := s.getString(key)
	if err != nil {
		return 0, err
	}
	return strconv.Atoi(str)
}

func (s *SettingService) GetListen() (string, error) {
	return s.getString("webListen")
}

func (s *SettingService) GetPort() (int, error) {
	return s.getInt("webPort")
}

// GetSecret returns the session-signing secret. A generated secret is
// persisted on first read so sessions survive restarts.
func (s *SettingService) GetSecret() (string, error) {
	_, err := s.getSetting("secret")
	if database.IsNotFound(err) {
		if err := s.saveSetting("secret", defaultValueMap["secret"]); err != nil {
			return "", err
		}
	} else if err != nil {
		return "", err
	}
	return s.getString("secret")
}

// GetSessionMaxAge returns the session lifetime in minutes.
func (s *SettingService) GetSessionMaxAge() (int, error) {
	return s.getInt("sessionMaxAge")
}

func (s *SettingService) GetUploadFolder() (string, error) {
	return s.getString("uploadFolder")
}

func (s *SettingService) SetUploadFolder(folder string) error {
	return s.setString("uploadFolder", folder)
}

// GetUploadExtensions returns the allow-list of image extensions as a set,
// lowercased, without leading dots.
func (s *SettingService) GetUploadExtensions() (map[string]bool, error) {
	str, err := s.getString("uploadExtensions")
	if err != nil {
		return nil, err
	}
	exts := make(map[string]bool)
	for _, ext := range strings.Split(str, ",") {
		ext = strings.ToLower(strings.TrimSpace(strings.TrimPrefix(ext, ".")))
		if ext != "" {
			exts[ext] = true
		}
	}
	return exts, nil
}

func (s *SettingService) SetUploadExtensions(exts []string) error {
	return s.setString("uploadExtensions", strings.Join(exts, ","))
}

func (s *SettingService) GetDefaultProductImage() (string, error) {
	return s.getString("defaultProductImage")
}

// GetHomeBroadcasts returns how many recent broadcasts the home page shows.
func (s *SettingService) GetHomeBroadcasts() (int, error) {
	return s.getInt("homeBroadcasts")
}
