package web

import (
	"context"
	"html"
	"io"

	"github.com/a-h/templ"
)

func Home(flash string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, _ = io.WriteString(w, `<!doctype html>
<html lang="en">
  <head>
    <meta charset="utf-8"/>
    <meta name="viewport" content="width=device-width, initial-scale=1"/>
    <title>Gincana</title>
    <link rel="stylesheet" href="/static/styles.css"/>
  </head>
  <body>
    <main class="shell">
      <header class="hero">
        <span class="tag">Gincana</span>
        <h1>Class quiz time.</h1>
        <p>Log in or register to play solo or join a room.</p>
      </header>`)
		if flash != "" {
			_, _ = io.WriteString(w, `<div class="flash">`+html.EscapeString(flash)+`</div>`)
		}
		_, _ = io.WriteString(w, `
      <section class="panel">
        <h2>Log in</h2>
        <form id="loginForm" class="auth-form">
          <input name="email" type="email" placeholder="Email" autocomplete="email" required/>
          <input name="password" type="password" placeholder="Password" autocomplete="current-password" required/>
          <button type="submit" class="primary">Log in</button>
        </form>
        <div id="loginResult" class="result"></div>
      </section>

      <section class="panel">
        <h2>Register</h2>
        <form id="registerForm" class="auth-form">
          <input name="name" placeholder="Display name" autocomplete="name" required/>
          <input name="email" type="email" placeholder="Email" autocomplete="email" required/>
          <input name="team" placeholder="Team (optional)"/>
          <input name="class" placeholder="Class (optional)"/>
          <input name="password" type="password" placeholder="Password" autocomplete="new-password" required/>
          <button type="submit" class="secondary">Register</button>
        </form>
        <div id="registerResult" class="result"></div>
      </section>
    </main>

    <script>
      async function submitAuth(url, body, resultEl) {
        resultEl.textContent = "Working...";
        const res = await fetch(url, {
          method: "POST",
          headers: { "Content-Type": "application/json" },
          body: JSON.stringify(body)
        });
        const data = await res.json();
        if (!res.ok) {
          resultEl.textContent = data.error || "Request failed.";
          return;
        }
        window.location = "/play";
      }

      const loginForm = document.getElementById("loginForm");
      loginForm.addEventListener("submit", (event) => {
        event.preventDefault();
        submitAuth("/api/login", {
          email: loginForm.elements.email.value.trim(),
          password: loginForm.elements.password.value
        }, document.getElementById("loginResult"));
      });

      const registerForm = document.getElementById("registerForm");
      registerForm.addEventListener("submit", (event) => {
        event.preventDefault();
        submitAuth("/api/register", {
          name: registerForm.elements.name.value.trim(),
          email: registerForm.elements.email.value.trim(),
          team: registerForm.elements.team.value.trim(),
          class: registerForm.elements.class.value.trim(),
          password: registerForm.elements.password.value
        }, document.getElementById("registerResult"));
      });
    </script>
  </body>
</html>`)
		return nil
	})
}
