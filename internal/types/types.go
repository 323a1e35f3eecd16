package types

// CameraConfig учетные данные камеры, собранные экраном конфигурации
type CameraConfig struct {
	CameraIP string `json:"camera_ip" form:"camera_ip"`
	Username string `json:"username" form:"username"`
	Password string `json:"password" form:"password"`
	Port     string `json:"port" form:"port"`
}

// Complete возвращает true если все поля заполнены
func (c CameraConfig) Complete() bool {
	return c.CameraIP != "" && c.Username != "" && c.Password != "" && c.Port != ""
}

// MissingFields возвращает имена пустых полей в порядке формы
func (c CameraConfig) MissingFields() []string {
	var missing []string
	if c.CameraIP == "" {
		missing = append(missing, "camera_ip")
	}
	if c.Username == "" {
		missing = append(missing, "username")
	}
	if c.Password == "" {
		missing = append(missing, "password")
	}
	if c.Port == "" {
		missing = append(missing, "port")
	}
	return missing
}

// ConfigRequest тело запроса POST /camera_config
type ConfigRequest struct {
	CameraIP string `json:"camera_ip"`
	Username string `json:"username"`
	Password string `json:"password"`
	Channel  int    `json:"channel"`
	Port     string `json:"port"`
}

// Zone зона сетки 3x3, связанная с пресетом камеры
type Zone struct {
	ID       int    `json:"id"`
	Position string `json:"position"`
	Key      string `json:"key"`
}

// ControlMessage сообщение от браузера по каналу управления
type ControlMessage struct {
	Type string `json:"type"`
	Key  string `json:"key,omitempty"`
	Zone int    `json:"zone,omitempty"`
}

// ControlAck ответ сервера на ControlMessage
type ControlAck struct {
	Type    string `json:"type"`
	Handled bool   `json:"handled"`
	Zone    int    `json:"zone,omitempty"`
	Error   string `json:"error,omitempty"`
}

const (
	MessageKeyDown = "keydown"
	MessageClick   = "click"
	MessageAck     = "ack"
)
