package models

// Developer represents a developer account
type Developer struct {
	ID    int64  `json:"id" db:"id" gorm:"column:id;primaryKey"`
	Name  string `json:"name" db:"name" gorm:"column:name;type:varchar(50);not null"`
	Email string `json:"email" db:"email" gorm:"column:email;type:varchar(50);not null;unique"`
}

func (Developer) TableName() string {
	return "developers"
}

// OperatingSystem is a developer's preferred OS.
type OperatingSystem string

const (
	Windows OperatingSystem = "Windows"
	Linux   OperatingSystem = "Linux"
	MacOS   OperatingSystem = "MacOS"
)

// OperatingSystems lists the accepted preferredOS values in display order.
var OperatingSystems = []string{string(Windows), string(Linux), string(MacOS)}

func (os OperatingSystem) Valid() bool {
	switch os {
	case Windows, Linux, MacOS:
		return true
	}
	return false
}

// DeveloperInfo holds the optional profile of a developer. A developer has at most one.
type DeveloperInfo struct {
	ID             int64           `json:"id" db:"id" gorm:"column:id;primaryKey"`
	DeveloperSince *Date           `json:"developerSince" db:"developer_since" gorm:"column:developer_since"`
	PreferredOS    OperatingSystem `json:"preferredOS" db:"preferred_os" gorm:"column:preferred_os;not null"`
	DeveloperID    int64           `json:"developerId" db:"developer_id" gorm:"column:developer_id;not null;unique"`
}

func (DeveloperInfo) TableName() string {
	return "developer_infos"
}

// DeveloperWithInfo is a developer left-joined with its info. The info
// columns are null when the developer has none.
type DeveloperWithInfo struct {
	DeveloperID                 int64            `json:"developerId" gorm:"column:developer_id"`
	DeveloperName               string           `json:"developerName" gorm:"column:developer_name"`
	DeveloperEmail              string           `json:"developerEmail" gorm:"column:developer_email"`
	DeveloperInfoDeveloperSince *Date            `json:"developerInfoDeveloperSince" gorm:"column:developer_info_developer_since"`
	DeveloperInfoPreferredOS    *OperatingSystem `json:"developerInfoPreferredOS" gorm:"column:developer_info_preferred_os"`
}
