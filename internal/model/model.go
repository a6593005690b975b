// Package model defines the typed views of the schema-less documents the
// store persists.
//
// The store itself works with map documents; these structs are the
// per-entity shape consumed by the services. Timestamps are ISO-8601
// strings, and date/time fields keep the stored "YYYY-MM-DD" / "HH:MM"
// text form so loose filter comparisons behave the same on both views.
package model

// Appointment statuses.
const (
	StatusScheduled = "scheduled"
	StatusConfirmed = "confirmed"
	StatusCompleted = "completed"
	StatusCancelled = "cancelled"
)

// Payment states carried on appointments and payment records.
const (
	PaymentUnpaid = "unpaid"
	PaymentPaid   = "paid"
)

// User is an account that can sign in.
type User struct {
	ID            string   `json:"id"`
	Username      string   `json:"username"`
	Email         string   `json:"email"`
	PasswordHash  string   `json:"password,omitempty"`
	FullName      string   `json:"fullName"`
	Role          string   `json:"role"`
	Phone         string   `json:"phone,omitempty"`
	Status        string   `json:"status"`
	Permissions   []string `json:"permissions"`
	LastLogin     string   `json:"lastLogin,omitempty"`
	LoginAttempts int      `json:"loginAttempts"`
	AccountLocked bool     `json:"accountLocked"`
	LockedUntil   string   `json:"lockedUntil,omitempty"`
	CreatedAt     string   `json:"createdAt,omitempty"`
	UpdatedAt     string   `json:"updatedAt,omitempty"`
}

// Sanitized returns a copy safe to hand to callers: no password hash.
func (u User) Sanitized() User {
	u.PasswordHash = ""
	return u
}

// Patient is a clinic patient record.
type Patient struct {
	ID        string `json:"id"`
	Code      string `json:"code,omitempty"`
	Name      string `json:"name"`
	Phone     string `json:"phone,omitempty"`
	Email     string `json:"email,omitempty"`
	Gender    string `json:"gender,omitempty"`
	BirthDate string `json:"birthDate,omitempty"`
	Address   string `json:"address,omitempty"`
	Notes     string `json:"notes,omitempty"`
	CreatedAt string `json:"createdAt,omitempty"`
	UpdatedAt string `json:"updatedAt,omitempty"`
}

// ScheduleEntry is one weekday slot of a doctor's weekly schedule.
type ScheduleEntry struct {
	Day         string `json:"day"` // weekday name, "Sunday".."Saturday"
	From        string `json:"from"`
	To          string `json:"to"`
	IsAvailable bool   `json:"isAvailable"`
}

// Doctor is a practitioner with a weekly schedule.
type Doctor struct {
	ID              string          `json:"id"`
	Code            string          `json:"code,omitempty"`
	Name            string          `json:"name"`
	Specialty       string          `json:"specialty,omitempty"`
	Phone           string          `json:"phone,omitempty"`
	Email           string          `json:"email,omitempty"`
	Schedule        []ScheduleEntry `json:"schedule,omitempty"`
	ConsultationFee float64         `json:"consultationFee,omitempty"`
	Status          string          `json:"status"`
	CreatedAt       string          `json:"createdAt,omitempty"`
	UpdatedAt       string          `json:"updatedAt,omitempty"`
}

// Appointment links a patient and a doctor to a calendar slot.
type Appointment struct {
	ID            string  `json:"id"`
	Code          string  `json:"code"` // display label only, not a key
	PatientID     string  `json:"patientId"`
	DoctorID      string  `json:"doctorId"`
	Date          string  `json:"date"` // "YYYY-MM-DD"
	Time          string  `json:"time"` // "HH:MM"
	Type          string  `json:"type,omitempty"`
	Status        string  `json:"status"`
	Reason        string  `json:"reason,omitempty"`
	Notes         string  `json:"notes,omitempty"`
	Fee           float64 `json:"fee"`
	PaymentStatus string  `json:"paymentStatus"`
	CreatedAt     string  `json:"createdAt,omitempty"`
	UpdatedAt     string  `json:"updatedAt,omitempty"`
	CreatedBy     string  `json:"createdBy,omitempty"`
}

// Payment is a received or pending payment record.
type Payment struct {
	ID            string  `json:"id"`
	AppointmentID string  `json:"appointmentId,omitempty"`
	PatientID     string  `json:"patientId,omitempty"`
	Amount        float64 `json:"amount"`
	Date          string  `json:"date"` // "YYYY-MM-DD"
	Method        string  `json:"method,omitempty"`
	Status        string  `json:"status"`
	CreatedAt     string  `json:"createdAt,omitempty"`
	UpdatedAt     string  `json:"updatedAt,omitempty"`
}

// InventoryItem is a stocked supply or medication.
type InventoryItem struct {
	ID          string  `json:"id"`
	Code        string  `json:"code,omitempty"`
	Name        string  `json:"name"`
	Category    string  `json:"category,omitempty"`
	Unit        string  `json:"unit,omitempty"`
	Quantity    int     `json:"quantity"`
	MinQuantity int     `json:"minQuantity"`
	Price       float64 `json:"price"`
	ExpiryDate  string  `json:"expiryDate,omitempty"`
	Supplier    string  `json:"supplier,omitempty"`
	Status      string  `json:"status"`
	CreatedAt   string  `json:"createdAt,omitempty"`
	UpdatedAt   string  `json:"updatedAt,omitempty"`
}

// Notification is a user-facing message record.
type Notification struct {
	ID        string `json:"id"`
	UserID    string `json:"userId"`
	Title     string `json:"title"`
	Message   string `json:"message"`
	Type      string `json:"type"`
	IsRead    bool   `json:"isRead"`
	ReadAt    string `json:"readAt,omitempty"`
	ExpiresAt string `json:"expiresAt,omitempty"`
	CreatedAt string `json:"createdAt,omitempty"`
	UpdatedAt string `json:"updatedAt,omitempty"`
}

// Session is the single process-wide record of the authenticated actor.
// Persisted under its own key, not as a collection document.
type Session struct {
	UserID      string   `json:"userId"`
	Username    string   `json:"username"`
	Role        string   `json:"role"`
	Permissions []string `json:"permissions"`
	LoginTime   string   `json:"loginTime"`
	SessionID   string   `json:"sessionId"`
}
