package server

import (
	"strings"

	"github.com/gofiber/fiber/v2"
)

// shellPage is the browser shell: a static document whose #app region is
// replaced with whatever the screen pushes over the websocket. All user
// actions are forwarded to the action API with the token from login.
const shellPage = `<!doctype html>
<html>
<head>
<meta charset="utf-8">
<title>Tastebook</title>
</head>
<body class="light">
<div id="app"></div>
<div id="notice" hidden></div>
<script>
(function () {
  var token = null;
  var app = document.getElementById('app');
  var noticeBox = document.getElementById('notice');

  var ws = new WebSocket('ws://' + location.host + '/ws/screen');
  ws.onmessage = function (ev) { app.innerHTML = ev.data; };

  function notice(text) {
    noticeBox.textContent = text;
    noticeBox.hidden = false;
    setTimeout(function () { noticeBox.hidden = true; }, 3000);
  }

  function call(method, path, body, contentType) {
    var headers = {};
    if (token) headers['Authorization'] = 'Bearer ' + token;
    if (contentType) headers['Content-Type'] = contentType;
    return fetch(path, { method: method, headers: headers, body: body })
      .then(function (res) {
        if (!res.ok) {
          return res.json().then(function (data) {
            notice(data.error || 'Something went wrong');
            throw new Error(data.error);
          });
        }
        return res.json().catch(function () { return {}; });
      });
  }

  document.addEventListener('submit', function (ev) {
    var form = ev.target.closest('form[data-action]');
    if (!form) return;
    ev.preventDefault();
    var action = form.dataset.action;
    var fd = new FormData(form);

    if (action === 'login' || action === 'register') {
      var body = JSON.stringify(Object.fromEntries(fd.entries()));
      call('POST', '/api/auth/' + action, body, 'application/json')
        .then(function (data) {
          token = data.token;
          form.reset();
        });
    } else if (action === 'create-recipe') {
      call('POST', '/api/recipes/', fd).then(function () { form.reset(); });
    } else if (action === 'update-profile') {
      call('PUT', '/api/profile', fd);
    } else if (action === 'comment') {
      call('POST', '/api/recipes/' + form.dataset.recipeId + '/comments',
        JSON.stringify({ text: fd.get('text') }), 'application/json');
    } else if (action === 'send-message') {
      call('POST', '/api/messages/' + form.dataset.userId,
        JSON.stringify({ text: fd.get('text') }), 'application/json');
    } else if (action === 'search') {
      call('GET', '/api/search?q=' + encodeURIComponent(fd.get('q')));
    }
  });

  document.addEventListener('click', function (ev) {
    var el = ev.target.closest('[data-nav],[data-action]');
    if (!el || el.tagName === 'FORM') return;
    if (el.dataset.nav) {
      call('POST', '/api/nav/' + el.dataset.nav);
      return;
    }
    switch (el.dataset.action) {
      case 'logout':
        call('POST', '/api/auth/logout').then(function () { token = null; });
        break;
      case 'like':
        call('POST', '/api/recipes/' + el.dataset.recipeId + '/like');
        break;
      case 'delete-recipe':
        call('DELETE', '/api/recipes/' + el.dataset.recipeId);
        break;
      case 'add-friend':
        call('POST', '/api/friends/' + el.dataset.userId);
        break;
      case 'open-chat':
        call('POST', '/api/chat/' + el.dataset.userId);
        break;
      case 'theme-toggle':
        call('POST', '/api/theme/toggle').then(function (data) {
          document.body.className = data.theme;
        });
        break;
    }
  });
})();
</script>
</body>
</html>`

// Index serves the browser shell with the current screen pre-filled, so the
// first paint does not wait for the websocket handshake.
func (s *Server) Index(c *fiber.Ctx) error {
	page := strings.Replace(shellPage, `<div id="app"></div>`,
		`<div id="app">`+s.screen.Current()+`</div>`, 1)
	c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	return c.SendString(page)
}
