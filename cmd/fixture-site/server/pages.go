package server

// Pages maps each fixture path to its HTML. Every page exercises one
// driver primitive and nothing else.
var Pages = map[string]string{
	"/":            indexPage,
	"/list":        listPage,
	"/toggle":      togglePage,
	"/keys":        keysPage,
	"/alert":       alertPage,
	"/delayed":     delayedPage,
	"/frame":       framePage,
	"/frame/inner": frameInnerPage,
	"/hover":       hoverPage,
	"/hover/done":  hoverDonePage,
	"/table":       tablePage,
	"/history":     historyPage,
}

const indexPage = `<!DOCTYPE html>
<html>
<head><title>Fixture Index</title></head>
<body>
    <h1>Fixture pages</h1>
    <ul>
        <li><a href="/list">list</a></li>
        <li><a href="/toggle">toggle</a></li>
        <li><a href="/keys">keys</a></li>
        <li><a href="/alert">alert</a></li>
        <li><a href="/delayed">delayed</a></li>
        <li><a href="/frame">frame</a></li>
        <li><a href="/hover">hover</a></li>
        <li><a href="/table">table</a></li>
        <li><a href="/history">history</a></li>
    </ul>
</body>
</html>`

// listPage appends numbered items; each item removes itself on click.
const listPage = `<!DOCTYPE html>
<html>
<head><title>List</title></head>
<body>
    <button id="add" onclick="addItem()">Add</button>
    <div id="items"></div>
    <script>
        let next = 1;
        function addItem() {
            const b = document.createElement('button');
            b.className = 'item';
            b.textContent = 'item ' + next++;
            b.onclick = () => b.remove();
            document.getElementById('items').appendChild(b);
        }
    </script>
</body>
</html>`

const togglePage = `<!DOCTYPE html>
<html>
<head><title>Toggle</title></head>
<body>
    <form id="boxes">
        <input type="checkbox" id="a"> a<br>
        <input type="checkbox" id="b" checked> b
    </form>
    <select id="choice">
        <option value="" disabled selected>Pick one</option>
        <option value="1">First</option>
        <option value="2">Second</option>
    </select>
</body>
</html>`

const keysPage = `<!DOCTYPE html>
<html>
<head><title>Keys</title></head>
<body>
    <input type="number" id="num">
</body>
</html>`

const alertPage = `<!DOCTYPE html>
<html>
<head><title>Alert</title></head>
<body>
    <div id="spot" style="width:200px;height:100px;border:1px dashed #999"
         oncontextmenu="alert('fixture context menu'); return false;">right-click</div>
    <button id="confirm" onclick="document.getElementById('answer').textContent = confirm('sure?') ? 'yes' : 'no'">confirm</button>
    <p id="answer"></p>
</body>
</html>`

// delayedPage removes #target behind a loading indicator after ?delay ms
// (default 500).
const delayedPage = `<!DOCTYPE html>
<html>
<head><title>Delayed</title></head>
<body>
    <input type="checkbox" id="target">
    <button id="start" onclick="start()">Remove</button>
    <div id="loading" style="display:none">Loading...</div>
    <p id="message"></p>
    <script>
        function start() {
            const delay = Number(new URLSearchParams(location.search).get('delay') || 500);
            document.getElementById('loading').style.display = 'block';
            setTimeout(() => {
                document.getElementById('target').remove();
                document.getElementById('loading').style.display = 'none';
                document.getElementById('message').textContent = 'done';
            }, delay);
        }
    </script>
</body>
</html>`

const framePage = `<!DOCTYPE html>
<html>
<head><title>Frame</title></head>
<body>
    <h3 id="outer">outside the frame</h3>
    <iframe id="inner" src="/frame/inner" width="400" height="200"></iframe>
</body>
</html>`

// frameInnerPage injects its content late so callers must wait for it.
const frameInnerPage = `<!DOCTYPE html>
<html>
<head><title>Inner</title></head>
<body>
    <script>
        setTimeout(() => {
            const p = document.createElement('p');
            p.id = 'content';
            p.textContent = 'inside the frame';
            document.body.appendChild(p);
        }, 300);
    </script>
</body>
</html>`

const hoverPage = `<!DOCTYPE html>
<html>
<head>
    <title>Hover</title>
    <style>
        .card { display: inline-block; width: 120px; height: 120px; margin: 10px; background: #ddd; }
        .card .caption { display: none; }
        .card:hover .caption { display: block; }
    </style>
</head>
<body>
    <div class="card"><div class="caption"><h5>card 1</h5><a href="/hover/done?card=1">open 1</a></div></div>
    <div class="card"><div class="caption"><h5>card 2</h5><a href="/hover/done?card=2">open 2</a></div></div>
</body>
</html>`

const hoverDonePage = `<!DOCTYPE html>
<html>
<head><title>Hover Done</title></head>
<body><h1 id="done">opened</h1></body>
</html>`

const tablePage = `<!DOCTYPE html>
<html>
<head><title>Table</title></head>
<body>
    <table id="people">
        <thead><tr><th>Name</th><th>Due</th></tr></thead>
        <tbody>
            <tr><td>Ada</td><td>$10.00</td></tr>
            <tr><td>Linus</td><td>$20.50</td></tr>
        </tbody>
    </table>
</body>
</html>`


// historyPage pushes a history entry that keeps the current URL.
const historyPage = `<!DOCTYPE html>
<html>
<head><title>History</title></head>
<body>
    <button id="push" onclick="history.pushState({n: history.length}, '', location.href); document.getElementById('pushed').textContent = 'yes'">push</button>
    <p id="pushed">no</p>
</body>
</html>`
