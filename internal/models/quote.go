package models

import "time"

// Quote — одна котировка в порядке прихода.
type Quote struct {
	Price float64
	Epoch time.Time // нулевое значение для котировок из истории без времени
}
