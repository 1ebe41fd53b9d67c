package web

import (
	"context"
	"io"

	"github.com/a-h/templ"
)

func Admin() templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, _ = io.WriteString(w, `<!doctype html>
<html lang="en">
  <head>
    <meta charset="utf-8"/>
    <meta name="viewport" content="width=device-width, initial-scale=1"/>
    <title>Gincana - Admin</title>
    <link rel="stylesheet" href="/static/styles.css"/>
  </head>
  <body>
    <main class="shell">
      <header class="hero">
        <span class="tag">Gincana admin</span>
        <h1>Manage the quiz</h1>
      </header>

      <section class="panel">
        <h2>Categories</h2>
        <form id="categoryForm">
          <input name="name" placeholder="Name" required/>
          <input name="description" placeholder="Description"/>
          <button type="submit" class="primary">Add category</button>
        </form>
        <div id="categoryList"></div>
      </section>

      <section class="panel">
        <h2>Questions</h2>
        <form id="questionForm">
          <select name="category" id="questionCategory"></select>
          <input name="text" placeholder="Question text" required/>
          <input name="weight" type="number" min="1" value="1"/>
          <input name="option1" placeholder="Option 1" required/>
          <input name="option2" placeholder="Option 2" required/>
          <input name="option3" placeholder="Option 3" required/>
          <input name="option4" placeholder="Option 4" required/>
          <select name="correct">
            <option value="0">Option 1 is correct</option>
            <option value="1">Option 2 is correct</option>
            <option value="2">Option 3 is correct</option>
            <option value="3">Option 4 is correct</option>
          </select>
          <button type="submit" class="primary">Add question</button>
        </form>
        <div id="questionList"></div>
      </section>

      <section class="panel">
        <h2>Rooms</h2>
        <form id="roomForm">
          <input name="name" placeholder="Room name" required/>
          <input name="capacity" type="number" min="0" value="0" title="0 = unlimited"/>
          <input name="seconds" type="number" min="0" value="30" title="Seconds per question"/>
          <button type="submit" class="primary">Add room</button>
        </form>
        <div id="roomList"></div>
      </section>

      <section class="panel">
        <h2>Players</h2>
        <div id="userList"></div>
      </section>
    </main>

    <script>
      async function send(method, url, body) {
        const res = await fetch(url, {
          method: method,
          headers: body ? { "Content-Type": "application/json" } : undefined,
          body: body ? JSON.stringify(body) : undefined
        });
        const data = await res.json();
        if (!res.ok) {
          alert(data.error || "Request failed.");
          return null;
        }
        return data;
      }

      async function loadCategories() {
        const data = await send("GET", "/api/admin/categories");
        if (!data) return;
        const list = document.getElementById("categoryList");
        const select = document.getElementById("questionCategory");
        list.innerHTML = "";
        select.innerHTML = "";
        for (const cat of data.categories) {
          const row = document.createElement("div");
          row.textContent = cat.name + " (" + cat.questions + " questions) ";
          const del = document.createElement("button");
          del.textContent = "Delete";
          del.addEventListener("click", async () => {
            if (await send("DELETE", "/api/admin/categories/" + cat.category_id)) loadCategories();
          });
          row.appendChild(del);
          list.appendChild(row);
          const option = document.createElement("option");
          option.value = cat.category_id;
          option.textContent = cat.name;
          select.appendChild(option);
        }
      }

      async function loadQuestions() {
        const data = await send("GET", "/api/admin/questions");
        if (!data) return;
        const list = document.getElementById("questionList");
        list.innerHTML = "";
        for (const q of data.questions) {
          const row = document.createElement("div");
          row.textContent = q.text + " ";
          const del = document.createElement("button");
          del.textContent = "Delete";
          del.addEventListener("click", async () => {
            if (await send("DELETE", "/api/admin/questions/" + q.question_id)) loadQuestions();
          });
          row.appendChild(del);
          list.appendChild(row);
        }
      }

      async function loadRooms() {
        const data = await send("GET", "/api/admin/rooms");
        if (!data) return;
        const list = document.getElementById("roomList");
        list.innerHTML = "";
        for (const room of data.rooms) {
          const row = document.createElement("div");
          row.textContent = room.name + " · " + room.status + " (" + room.players + " players) ";
          const open = document.createElement("a");
          open.href = "/rooms/" + room.room_id;
          open.textContent = "Open";
          row.appendChild(open);
          const del = document.createElement("button");
          del.textContent = "Delete";
          del.addEventListener("click", async () => {
            if (await send("DELETE", "/api/admin/rooms/" + room.room_id)) loadRooms();
          });
          row.appendChild(del);
          list.appendChild(row);
        }
      }

      async function loadUsers() {
        const data = await send("GET", "/api/admin/users");
        if (!data) return;
        const list = document.getElementById("userList");
        list.innerHTML = "";
        for (const user of data.users) {
          const row = document.createElement("div");
          row.textContent = user.name + " <" + user.email + ">" + (user.is_admin ? " [admin]" : "") + " ";
          const del = document.createElement("button");
          del.textContent = "Delete";
          del.addEventListener("click", async () => {
            if (await send("DELETE", "/api/admin/users/" + user.user_id)) loadUsers();
          });
          row.appendChild(del);
          list.appendChild(row);
        }
      }

      document.getElementById("categoryForm").addEventListener("submit", async (event) => {
        event.preventDefault();
        const form = event.target;
        if (await send("POST", "/api/admin/categories", {
          name: form.elements.name.value.trim(),
          description: form.elements.description.value.trim()
        })) {
          form.reset();
          loadCategories();
        }
      });

      document.getElementById("questionForm").addEventListener("submit", async (event) => {
        event.preventDefault();
        const form = event.target;
        const correct = parseInt(form.elements.correct.value);
        const options = [1, 2, 3, 4].map((n, i) => ({
          text: form.elements["option" + n].value.trim(),
          correct: i === correct
        }));
        if (await send("POST", "/api/admin/questions", {
          category_id: parseInt(form.elements.category.value),
          text: form.elements.text.value.trim(),
          weight: parseInt(form.elements.weight.value) || 1,
          options: options
        })) {
          form.reset();
          loadQuestions();
          loadCategories();
        }
      });

      document.getElementById("roomForm").addEventListener("submit", async (event) => {
        event.preventDefault();
        const form = event.target;
        if (await send("POST", "/api/admin/rooms", {
          name: form.elements.name.value.trim(),
          capacity: parseInt(form.elements.capacity.value) || 0,
          question_seconds: parseInt(form.elements.seconds.value) || 0
        })) {
          form.reset();
          loadRooms();
        }
      });

      loadCategories();
      loadQuestions();
      loadRooms();
      loadUsers();
    </script>
  </body>
</html>`)
		return nil
	})
}
