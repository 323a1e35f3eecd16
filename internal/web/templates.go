package web

import "html/template"

const (
	ConfigTemplate  = "config.html"
	ControlTemplate = "control.html"
)

// ConfigPage данные экрана конфигурации
type ConfigPage struct {
	CameraIP string
	Username string
	Port     string
	Error    string
	Loading  bool
}

// ControlPage данные экрана управления
type ControlPage struct {
	Title     string
	PoweredBy string
	FeedURL   string
	Zones     []ZoneView
	// KeyZones клавиша -> зона, для отправки без сокета
	KeyZones map[string]int
}

type ZoneView struct {
	ID       int
	Position string
	Key      string
}

// Templates разбирает шаблоны обоих экранов
func Templates() *template.Template {
	t := template.Must(template.New(ConfigTemplate).Parse(configHTML))
	template.Must(t.New(ControlTemplate).Parse(controlHTML))
	return t
}

const baseStyle = `
    body { font-family: Arial, sans-serif; margin: 0; background: #f4f6f8; color: #1f2933; }
    .error-message { color: #b42318; background: #fef3f2; padding: 10px; border-radius: 5px; margin: 10px 0; }
`

const configHTML = `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8">
  <title>Camera Configuration</title>
  <meta name="viewport" content="width=device-width, initial-scale=1" />
  <style>` + baseStyle + `
    .camera-config-container { display: flex; justify-content: center; padding: 40px 16px; }
    .camera-config-card { background: #fff; border-radius: 10px; padding: 24px 32px; width: 360px; box-shadow: 0 6px 22px rgba(0,0,0,.12); }
    .form-group { display: flex; flex-direction: column; margin-bottom: 14px; }
    .form-group label { font-weight: 600; margin-bottom: 4px; }
    .form-group input { padding: 8px 10px; border: 1px solid #cbd2d9; border-radius: 5px; }
    .submit-button { width: 100%; padding: 10px 20px; background: #007bff; color: #fff; border: none; border-radius: 5px; cursor: pointer; }
    .submit-button:disabled { opacity: .55; cursor: not-allowed; }
  </style>
</head>
<body>
  <div class="camera-config-container">
    <div class="camera-config-card">
      <h1 class="config-title">Camera Configuration</h1>
      <form id="config-form" method="post" action="/configure" class="config-form">
        <div class="form-group">
          <label for="camera_ip">Camera IP</label>
          <input type="text" id="camera_ip" name="camera_ip" value="{{.CameraIP}}" placeholder="Enter camera IP address" required>
        </div>
        <div class="form-group">
          <label for="username">Username</label>
          <input type="text" id="username" name="username" value="{{.Username}}" placeholder="Enter username" required>
        </div>
        <div class="form-group">
          <label for="password">Password</label>
          <input type="password" id="password" name="password" placeholder="Enter password" required>
        </div>
        <div class="form-group">
          <label for="port">Port</label>
          <input type="text" id="port" name="port" value="{{.Port}}" placeholder="Enter port (default: 554)" required>
        </div>
        {{if .Error}}<div class="error-message">{{.Error}}</div>{{end}}
        <button type="submit" id="submit-button" class="submit-button"{{if .Loading}} disabled{{end}}>{{if .Loading}}Configuring...{{else}}Configure Camera{{end}}</button>
      </form>
    </div>
  </div>
  <script>
    document.getElementById('config-form').addEventListener('submit', function () {
      const button = document.getElementById('submit-button');
      button.disabled = true;
      button.textContent = 'Configuring...';
    });
  </script>
</body>
</html>`

const controlHTML = `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8">
  <title>{{.Title}}</title>
  <meta name="viewport" content="width=device-width, initial-scale=1" />
  <style>` + baseStyle + `
    .cricket-ground-container { display: flex; flex-direction: column; align-items: center; padding: 16px; }
    .live-feed { max-width: 95vw; width: 800px; background: #000; border-radius: 10px; }
    .cricket-ground { display: grid; grid-template-columns: repeat(3, 1fr); gap: 6px; width: 480px; height: 480px;
      margin-top: 16px; border-radius: 50%; overflow: hidden; background: #3b7d3a; }
    .cricket-area { display: flex; flex-direction: column; align-items: center; justify-content: center;
      background: rgba(255,255,255,.08); color: #fff; cursor: pointer; user-select: none; }
    .cricket-area:hover, .cricket-area.active { background: rgba(255,255,255,.3); }
    .area-number { font-size: 28px; font-weight: 700; }
    .area-key { font-size: 12px; opacity: .75; text-transform: uppercase; }
  </style>
</head>
<body>
  <div class="cricket-ground-container">
    <h1 class="cricket-ground-title">{{.Title}}</h1>
    <div class="live-feed-container">
      <div class="live-feed-wrapper">
        <img src="{{.FeedURL}}" alt="Live Camera Feed" class="live-feed">
      </div>
    </div>
    <div class="cricket-ground">
      {{range .Zones}}<div class="cricket-area {{.Position}}" data-area-id="{{.ID}}">
        <div class="area-number">{{.ID}}</div>
        <div class="area-key">{{.Key}}</div>
      </div>
      {{end}}
    </div>
    <p>^</p>
    <p>Camera This Side</p>
    <p>Powered by: {{.PoweredBy}}</p>
  </div>
  <script>
    const keyZones = {{.KeyZones}};
    const proto = location.protocol === 'https:' ? 'wss:' : 'ws:';
    const reconnectDelay = 2000;
    let socket;

    function connect() {
      socket = new WebSocket(proto + '//' + location.host + '/ws/control');
      socket.addEventListener('message', function (event) {
        const ack = JSON.parse(event.data);
        if (ack.handled) { highlight(ack.zone); }
      });
      socket.addEventListener('close', function () {
        setTimeout(connect, reconnectDelay);
      });
    }

    function highlight(zone) {
      const area = document.querySelector('[data-area-id="' + zone + '"]');
      if (area) {
        area.classList.add('active');
        setTimeout(function () { area.classList.remove('active'); }, 200);
      }
    }

    function gotoPreset(zone) {
      highlight(zone);
      fetch('/api/v1/presets/' + zone + '/goto', { method: 'POST' })
        .catch(function (err) { console.error('Error calling API:', err); });
    }

    // без открытого сокета клик и клавиша идут через REST
    function send(message) {
      if (socket && socket.readyState === WebSocket.OPEN) {
        socket.send(JSON.stringify(message));
        return;
      }
      const zone = message.type === 'click' ? message.zone : keyZones[message.key.toLowerCase()];
      if (zone) { gotoPreset(zone); }
    }

    document.querySelectorAll('.cricket-area').forEach(function (area) {
      area.addEventListener('click', function () {
        send({ type: 'click', zone: Number(area.dataset.areaId) });
      });
    });

    document.addEventListener('keydown', function (event) {
      if (!(event.key.toLowerCase() in keyZones)) { return; }
      event.preventDefault();
      send({ type: 'keydown', key: event.key });
    });

    connect();
  </script>
</body>
</html>`
