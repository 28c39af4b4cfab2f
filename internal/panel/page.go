package panel

import "fmt"

// PageHTML renders the panel host document: a full-viewport iframe loading
// the agent frontend, with script execution enabled, relaying messages
// between the bridge websocket and the iframe.
func PageHTML(wsURL string) string {
	return fmt.Sprintf(pageTemplate, FrontendURL, wsURL, FrontendURL)
}

const pageTemplate = `<!DOCTYPE html>
<html>
<head>
  <meta charset="utf-8">
  <title>Agent Workbench</title>
  <style>
    html, body { margin: 0; padding: 0; height: 100%%; overflow: hidden; }
    iframe { width: 100%%; height: 100%%; border: none; }
  </style>
</head>
<body>
  <iframe id="app" src="%s" allow="clipboard-read; clipboard-write"></iframe>
  <script>
    const frame = document.getElementById("app");
    const ws = new WebSocket("%s?role=panel");
    ws.onmessage = (ev) => {
      const msg = JSON.parse(ev.data);
      if (msg.op === "panel.post" && msg.payload && msg.payload.message) {
        frame.contentWindow.postMessage(msg.payload.message, "%s");
      }
    };
    window.addEventListener("message", (ev) => {
      if (ws.readyState !== WebSocket.OPEN) return;
      ws.send(JSON.stringify({type: "event", op: "suggestions", payload: ev.data}));
    });
  </script>
</body>
</html>
`
