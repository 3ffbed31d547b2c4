package health

import (
	"net/http"

	"gorm.io/gorm"
)

// HandleHealth reports whether the database connection is alive
func HandleHealth(w http.ResponseWriter, r *http.Request, db *gorm.DB) {
	sqlDB, err := db.DB()
	if err != nil || sqlDB.Ping() != nil {
		http.Error(w, "Error", http.StatusInternalServerError)
		return
	}
	w.Write([]byte("OK"))
}
