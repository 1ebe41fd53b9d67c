package web

import (
	"context"
	"io"
	"strconv"

	"github.com/a-h/templ"
)

// Room renders the lobby and in-room quiz. The page subscribes to the room's
// websocket feed and swaps between lobby and quiz as the status changes.
func Room(roomID int) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		id := strconv.Itoa(roomID)
		_, _ = io.WriteString(w, `<!doctype html>
<html lang="en">
  <head>
    <meta charset="utf-8"/>
    <meta name="viewport" content="width=device-width, initial-scale=1"/>
    <title>Gincana - Room</title>
    <link rel="stylesheet" href="/static/styles.css"/>
  </head>
  <body>
    <main class="shell">
      <header class="hero">
        <span class="tag">Gincana</span>
        <h1 id="roomName">Room</h1>
      </header>

      <section class="panel" id="lobbyPanel">
        <h2>Waiting for the game to start</h2>
        <p><span id="playerCount">0</span> players joined.</p>
        <button id="startGame" class="primary hidden">Start game</button>
        <div id="lobbyResult" class="result"></div>
      </section>

      <section class="panel hidden" id="quizPanel">
        <h2 id="questionText"></h2>
        <p>Question <span id="questionIndex"></span> of <span id="questionCount"></span>
          · <span id="countdown"></span>s left</p>
        <div id="optionList"></div>
        <div id="answerResult" class="result"></div>
      </section>

      <section class="panel hidden" id="resultsPanel">
        <h2>Results</h2>
        <div id="resultsList"></div>
      </section>
    </main>

    <script>
      const roomID = `+id+`;
      let countdownTimer = null;

      fetch("/api/me").then(res => res.json()).then(me => {
        if (me.is_admin) {
          document.getElementById("startGame").classList.remove("hidden");
        }
      });

      document.getElementById("startGame").addEventListener("click", async () => {
        const res = await fetch("/api/rooms/" + roomID + "/start", { method: "POST" });
        if (!res.ok) {
          const data = await res.json();
          document.getElementById("lobbyResult").textContent = data.error || "Could not start.";
        }
      });

      function render(snapshot) {
        document.getElementById("roomName").textContent = snapshot.name;
        document.getElementById("playerCount").textContent = snapshot.players;
        const lobby = document.getElementById("lobbyPanel");
        const quiz = document.getElementById("quizPanel");
        const results = document.getElementById("resultsPanel");
        lobby.classList.toggle("hidden", snapshot.status !== "open");
        quiz.classList.toggle("hidden", snapshot.status !== "in-game");
        results.classList.toggle("hidden", snapshot.status !== "finished");
        if (snapshot.status === "in-game" && snapshot.question) {
          renderQuestion(snapshot);
        }
        if (snapshot.status === "finished") {
          renderResults(snapshot.results || []);
        }
      }

      function renderQuestion(snapshot) {
        document.getElementById("questionText").textContent = snapshot.question.text;
        document.getElementById("questionIndex").textContent = snapshot.question_index;
        document.getElementById("questionCount").textContent = snapshot.question_count;
        document.getElementById("answerResult").textContent = "";
        startCountdown(snapshot.remaining_seconds);
        const list = document.getElementById("optionList");
        list.innerHTML = "";
        for (const option of snapshot.question.options) {
          const btn = document.createElement("button");
          btn.className = "option";
          btn.textContent = option;
          btn.addEventListener("click", () => submitAnswer(option));
          list.appendChild(btn);
        }
      }

      function startCountdown(seconds) {
        clearInterval(countdownTimer);
        let left = seconds;
        document.getElementById("countdown").textContent = left;
        countdownTimer = setInterval(() => {
          left = Math.max(0, left - 1);
          document.getElementById("countdown").textContent = left;
        }, 1000);
      }

      async function submitAnswer(text) {
        const res = await fetch("/api/rooms/" + roomID + "/answers", {
          method: "POST",
          headers: { "Content-Type": "application/json" },
          body: JSON.stringify({ text: text })
        });
        const data = await res.json();
        if (!res.ok) {
          document.getElementById("answerResult").textContent = data.error || "Answer failed.";
          return;
        }
        document.getElementById("answerResult").textContent = "Answer saved.";
      }

      function renderResults(results) {
        clearInterval(countdownTimer);
        const list = document.getElementById("resultsList");
        list.innerHTML = "";
        results.sort((a, b) => b.correct - a.correct);
        results.forEach((entry, i) => {
          const row = document.createElement("div");
          row.textContent = (i + 1) + ". " + entry.name + " · " + entry.correct + "/" + entry.total;
          list.appendChild(row);
        });
      }

      const proto = window.location.protocol === "https:" ? "wss" : "ws";
      const ws = new WebSocket(proto + "://" + window.location.host + "/ws/rooms/" + roomID);
      ws.addEventListener("message", (event) => {
        render(JSON.parse(event.data));
      });

      fetch("/api/rooms/" + roomID).then(res => res.json()).then(render);
    </script>
  </body>
</html>`)
		return nil
	})
}
