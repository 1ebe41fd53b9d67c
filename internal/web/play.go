package web

import (
	"context"
	"io"

	"github.com/a-h/templ"
)

// Play is the player hub: configure a solo quiz, run it question by
// question, browse rooms, and check the ranking.
func Play() templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, _ = io.WriteString(w, `<!doctype html>
<html lang="en">
  <head>
    <meta charset="utf-8"/>
    <meta name="viewport" content="width=device-width, initial-scale=1"/>
    <title>Gincana - Play</title>
    <link rel="stylesheet" href="/static/styles.css"/>
  </head>
  <body>
    <main class="shell">
      <header class="hero">
        <span class="tag">Gincana</span>
        <h1>Ready for the quiz?</h1>
      </header>

      <section class="panel" id="configPanel">
        <h2>Solo quiz</h2>
        <div id="quotaList"></div>
        <p>Total selected: <span id="quotaTotal">0</span></p>
        <button id="startConfigured" class="primary">Start with my selection</button>
        <button id="startRandom" class="secondary">Start random (10)</button>
        <div id="configResult" class="result"></div>
      </section>

      <section class="panel hidden" id="quizPanel">
        <h2 id="questionText"></h2>
        <p>Question <span id="questionNumber"></span> of <span id="questionTotal"></span></p>
        <div id="optionList"></div>
        <button id="nextQuestion" class="primary">Next</button>
        <div id="quizResult" class="result"></div>
      </section>

      <section class="panel">
        <h2>Rooms</h2>
        <div id="roomList"></div>
      </section>

      <section class="panel">
        <h2>Ranking</h2>
        <div id="rankingList"></div>
      </section>
    </main>

    <script>
      let quiz = null;
      let index = 0;

      async function loadCategories() {
        const res = await fetch("/api/categories");
        const data = await res.json();
        const list = document.getElementById("quotaList");
        list.innerHTML = "";
        for (const cat of data.categories) {
          const row = document.createElement("div");
          row.className = "quota-row";
          row.innerHTML = cat.name + " (" + cat.questions + " available) " +
            '<input type="number" min="0" value="0" data-category="' + cat.category_id + '"/>';
          list.appendChild(row);
        }
        list.addEventListener("input", () => {
          let total = 0;
          for (const input of list.querySelectorAll("input")) {
            total += parseInt(input.value) || 0;
          }
          document.getElementById("quotaTotal").textContent = total;
        });
      }

      async function startQuiz(body) {
        const result = document.getElementById("configResult");
        const res = await fetch("/api/quizzes", {
          method: "POST",
          headers: { "Content-Type": "application/json" },
          body: JSON.stringify(body)
        });
        const data = await res.json();
        if (!res.ok) {
          result.textContent = data.error || "Could not start the quiz.";
          return;
        }
        if (data.selected < data.requested) {
          result.textContent = "Only " + data.selected + " of " + data.requested + " questions available.";
        }
        quiz = data;
        index = 0;
        document.getElementById("configPanel").classList.add("hidden");
        document.getElementById("quizPanel").classList.remove("hidden");
        renderQuestion();
      }

      function renderQuestion() {
        const question = quiz.questions[index];
        document.getElementById("questionText").textContent = question.text;
        document.getElementById("questionNumber").textContent = index + 1;
        document.getElementById("questionTotal").textContent = quiz.questions.length;
        const list = document.getElementById("optionList");
        list.innerHTML = "";
        for (const option of question.options) {
          const btn = document.createElement("button");
          btn.className = "option";
          btn.textContent = option;
          btn.addEventListener("click", () => submitAnswer(option, btn));
          list.appendChild(btn);
        }
      }

      async function submitAnswer(text, btn) {
        for (const other of document.querySelectorAll("#optionList .option")) {
          other.classList.remove("selected");
        }
        btn.classList.add("selected");
        await fetch("/api/quizzes/" + quiz.attempt_id + "/answers", {
          method: "POST",
          headers: { "Content-Type": "application/json" },
          body: JSON.stringify({
            question_number: index + 1,
            question_id: quiz.questions[index].id,
            text: text
          })
        });
      }

      document.getElementById("nextQuestion").addEventListener("click", async () => {
        if (index < quiz.questions.length - 1) {
          index++;
          renderQuestion();
          return;
        }
        const res = await fetch("/api/quizzes/" + quiz.attempt_id + "/results");
        const data = await res.json();
        document.getElementById("quizResult").textContent =
          "Done! " + data.correct + " of " + data.total + " correct.";
        loadRanking();
      });

      document.getElementById("startRandom").addEventListener("click", () => {
        startQuiz({ mode: "random", total: 10 });
      });

      document.getElementById("startConfigured").addEventListener("click", () => {
        const quotas = [];
        for (const input of document.querySelectorAll("#quotaList input")) {
          const count = parseInt(input.value) || 0;
          if (count > 0) {
            quotas.push({ category_id: parseInt(input.dataset.category), count: count });
          }
        }
        startQuiz({ mode: "configured", quotas: quotas });
      });

      async function loadRooms() {
        const res = await fetch("/api/rooms");
        if (!res.ok) return;
        const data = await res.json();
        const list = document.getElementById("roomList");
        list.innerHTML = "";
        for (const room of data.rooms) {
          const row = document.createElement("div");
          row.className = "room-row";
          row.innerHTML = room.name + " · " + room.status + " (" + room.players + " players) ";
          const btn = document.createElement("button");
          btn.textContent = "Join";
          btn.disabled = room.status !== "open";
          btn.addEventListener("click", async () => {
            const join = await fetch("/api/rooms/" + room.room_id + "/join", { method: "POST" });
            if (join.ok) {
              window.location = "/rooms/" + room.room_id;
            }
          });
          row.appendChild(btn);
          list.appendChild(row);
        }
      }

      async function loadRanking() {
        const res = await fetch("/api/ranking");
        const data = await res.json();
        const list = document.getElementById("rankingList");
        list.innerHTML = "";
        data.ranking.forEach((entry, i) => {
          const row = document.createElement("div");
          row.textContent = (i + 1) + ". " + entry.name + " · " + entry.correct + "/" + entry.total +
            " (attempts: " + entry.attempts + ")";
          list.appendChild(row);
        });
      }

      loadCategories();
      loadRooms();
      loadRanking();
    </script>
  </body>
</html>`)
		return nil
	})
}
