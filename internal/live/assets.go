package live

// clientJS forwards document events to the server and applies the patches
// it sends back. All page behavior lives on the server.
const clientJS = `(function () {
  "use strict";

  var script = document.currentScript;
  var wsPath = new URL(script.getAttribute("data-ws") || "ws", location.href);
  wsPath.protocol = location.protocol === "https:" ? "wss:" : "ws:";

  var sock = new WebSocket(wsPath.href);
  var queue = [];

  function send(ev) {
    var data = JSON.stringify(ev);
    if (sock.readyState === WebSocket.OPEN) {
      sock.send(data);
    } else {
      queue.push(data);
    }
  }

  sock.addEventListener("open", function () {
    queue.forEach(function (data) { sock.send(data); });
    queue = [];
  });

  function targets(p) {
    if (p.id) {
      var el = document.getElementById(p.id);
      return el ? [el] : [];
    }
    if (p.target) {
      return Array.prototype.slice.call(document.querySelectorAll(p.target));
    }
    return [];
  }

  function apply(p) {
    if (p.op === "clipboard") {
      navigator.clipboard.writeText(p.value || "").then(function () {
        send({ type: "copy_result", ok: true });
      }, function (err) {
        send({ type: "copy_result", ok: false, error: String(err) });
      });
      return;
    }
    targets(p).forEach(function (el) {
      switch (p.op) {
        case "html": el.innerHTML = p.html || ""; break;
        case "text": el.textContent = p.value || ""; break;
        case "attr": el.setAttribute(p.name, p.value || ""); break;
        case "style": el.style.setProperty(p.name, p.value || ""); break;
        case "class": el.classList.toggle(p.name, !!p.on); break;
        case "scroll": el.scrollIntoView({ behavior: "smooth", block: "center" }); break;
        case "value": el.value = p.value || ""; break;
        case "focus": el.focus(); break;
      }
    });
  }

  sock.addEventListener("message", function (m) {
    var msg = JSON.parse(m.data);
    if (msg.type === "patch") {
      msg.patches.forEach(apply);
    } else if (msg.type === "error") {
      console.error("pod-search:", msg.content);
    }
  });

  function searchInput() { return document.getElementById("sidebar-search-input"); }

  document.addEventListener("click", function (e) {
    var t = e.target;
    var el;
    if ((el = t.closest(".episode"))) {
      send({ type: "episode", series: el.dataset.series, episode: el.dataset.episode });
    } else if ((el = t.closest(".series"))) {
      send({ type: "toggle_series", index: parseInt(el.dataset.seriesIndex, 10) });
    } else if ((el = t.closest(".sidebar-search-result"))) {
      send({ type: "episode", series: el.dataset.series, episode: el.dataset.episode, time: el.dataset.time });
    } else if ((el = t.closest(".tab-button"))) {
      send({ type: "tab", tab: el.dataset.tab });
    } else if (t.closest("#sidebar-search-btn")) {
      send({ type: "search", query: searchInput().value });
    } else if (t.closest("#search-selection-btn")) {
      send({ type: "popup_search" });
    } else if (t.closest("#copy-selection-btn")) {
      send({ type: "popup_copy" });
    }
  });

  document.addEventListener("keydown", function (e) {
    if (e.key === "Enter" && e.target === searchInput()) {
      send({ type: "search", query: searchInput().value });
    }
  });

  document.addEventListener("mouseup", function (e) {
    var sel = window.getSelection();
    var text = sel.toString();
    var popup = document.getElementById("selection-popup");
    var ev = {
      type: "mouseup",
      text: text,
      x: e.clientX,
      popup: { width: popup.offsetWidth, height: popup.offsetHeight },
      viewport: { width: window.innerWidth, height: window.innerHeight, scroll_y: window.scrollY }
    };
    if (text.trim() && sel.rangeCount > 0) {
      var r = sel.getRangeAt(0).getBoundingClientRect();
      ev.rect = { top: r.top, bottom: r.bottom, left: r.left, right: r.right };
    }
    send(ev);
  });

  document.addEventListener("mousedown", function (e) {
    var popup = document.getElementById("selection-popup");
    send({ type: "mousedown", inside: popup.contains(e.target) });
  });

  var resizer = document.querySelector(".sidebar-resizer");
  if (resizer) {
    var move = function (e) { send({ type: "resize_move", x: e.clientX }); };
    var stop = function () {
      document.removeEventListener("mousemove", move);
      document.removeEventListener("mouseup", stop);
      send({ type: "resize_stop" });
    };
    resizer.addEventListener("mousedown", function (e) {
      send({ type: "resize_start", x: e.clientX });
      document.addEventListener("mousemove", move);
      document.addEventListener("mouseup", stop);
      e.preventDefault();
    });
  }
})();
`
