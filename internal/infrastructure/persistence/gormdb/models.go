package gormdb

// UserModel é o model GORM para utilizadores
type UserModel struct {
	ID       uint    `gorm:"primaryKey"`
	Name     string  `gorm:"type:varchar(255);not null"`
	Email    string  `gorm:"type:varchar(255);uniqueIndex;not null"`
	GoogleID *string `gorm:"column:google_id;type:varchar(255);uniqueIndex"`
	Role     string  `gorm:"type:varchar(20);not null;default:user;index"`
}

func (UserModel) TableName() string {
	return "users"
}

// SpecialtyModel é o model GORM para especialidades
type SpecialtyModel struct {
	ID      uint          `gorm:"primaryKey"`
	Name    string        `gorm:"type:varchar(100);uniqueIndex;not null"`
	Doctors []DoctorModel `gorm:"foreignKey:SpecialtyID"`
}

func (SpecialtyModel) TableName() string {
	return "specialties"
}

// DoctorModel é o model GORM para médicos
type DoctorModel struct {
	ID          uint            `gorm:"primaryKey"`
	Name        string          `gorm:"type:varchar(100);not null"`
	SpecialtyID uint            `gorm:"not null;index"`
	Specialty   *SpecialtyModel `gorm:"foreignKey:SpecialtyID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`
}

func (DoctorModel) TableName() string {
	return "doctors"
}

// AppointmentModel é o model GORM para consultas.
// date e time são strings de largura fixa (YYYY-MM-DD, HH:MM:SS) em UTC,
// o que mantém a ordem lexicográfica igual à cronológica em todos os drivers.
type AppointmentModel struct {
	ID           uint         `gorm:"primaryKey"`
	Date         string       `gorm:"column:date;type:varchar(10);not null;index:idx_appointments_slot,priority:1"`
	Time         string       `gorm:"column:time;type:varchar(8);not null;index:idx_appointments_slot,priority:2"`
	Notes        *string      `gorm:"type:text"`
	UserID       uint         `gorm:"not null;index"`
	DoctorID     uint         `gorm:"not null;index"`
	ReminderSent bool         `gorm:"not null;default:false"`
	Patient      *UserModel   `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
	Doctor       *DoctorModel `gorm:"foreignKey:DoctorID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`
}

func (AppointmentModel) TableName() string {
	return "appointments"
}
