package html

// CollectionReportTemplate renders the request collection grouped by folder
const CollectionReportTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>{{.Name}} - {{.GeneratedAt}}</title>
    <style>
        * {
            margin: 0;
            padding: 0;
            box-sizing: border-box;
        }

        body {
            font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, 'Helvetica Neue', Arial, sans-serif;
            background: #f5f7fa;
            color: #2c3e50;
            line-height: 1.6;
        }

        .container {
            max-width: 1200px;
            margin: 0 auto;
            padding: 20px;
        }

        header {
            background: linear-gradient(135deg, #667eea 0%, #764ba2 100%);
            color: white;
            padding: 40px 20px;
            margin-bottom: 30px;
            border-radius: 8px;
            box-shadow: 0 4px 6px rgba(0, 0, 0, 0.1);
        }

        header h1 {
            font-size: 2.5em;
            margin-bottom: 10px;
        }

        header p {
            font-size: 1.1em;
            opacity: 0.9;
        }

        .summary {
            background: white;
            padding: 20px;
            border-radius: 8px;
            margin-bottom: 30px;
            box-shadow: 0 2px 4px rgba(0, 0, 0, 0.05);
        }

        .summary h2 {
            color: #667eea;
            margin-bottom: 15px;
            font-size: 1.5em;
        }

        .stats {
            display: grid;
            grid-template-columns: repeat(auto-fit, minmax(200px, 1fr));
            gap: 15px;
            margin-top: 15px;
        }

        .stat-card {
            background: #f8f9fa;
            padding: 15px;
            border-radius: 6px;
            border-left: 4px solid #667eea;
        }

        .stat-card .label {
            font-size: 0.9em;
            color: #6c757d;
            margin-bottom: 5px;
        }

        .stat-card .value {
            font-size: 1.8em;
            font-weight: bold;
            color: #2c3e50;
        }

        .endpoint {
            background: white;
            margin-bottom: 20px;
            border-radius: 8px;
            overflow: hidden;
            box-shadow: 0 2px 4px rgba(0, 0, 0, 0.05);
            transition: box-shadow 0.3s ease;
        }

        .endpoint:hover {
            box-shadow: 0 4px 12px rgba(0, 0, 0, 0.1);
        }

        .endpoint-header {
            padding: 20px;
            background: #f8f9fa;
            border-bottom: 1px solid #e9ecef;
            cursor: pointer;
        }

        .endpoint-title {
            display: flex;
            align-items: center;
            gap: 15px;
            margin-bottom: 10px;
        }

        .method-badge {
            display: inline-block;
            padding: 6px 12px;
            border-radius: 4px;
            font-weight: bold;
            font-size: 0.85em;
            text-transform: uppercase;
            letter-spacing: 0.5px;
        }

        .method-get { background: #61affe; color: white; }
        .method-post { background: #49cc90; color: white; }
        .method-put { background: #fca130; color: white; }
        .method-delete { background: #f93e3e; color: white; }
        .method-patch { background: #50e3c2; color: white; }
        .method-default { background: #6c757d; color: white; }

        .endpoint-path {
            font-size: 1.3em;
            font-weight: 600;
            color: #2c3e50;
            font-family: 'Courier New', monospace;
        }

        .endpoint-meta {
            font-size: 0.9em;
            color: #6c757d;
            margin-top: 5px;
        }

        .endpoint-summary {
            margin-top: 10px;
            color: #495057;
        }

        .endpoint-body {
            padding: 20px;
        }

        .section-title {
            font-size: 1.1em;
            font-weight: 600;
            color: #495057;
            margin-bottom: 15px;
            padding-bottom: 8px;
            border-bottom: 2px solid #e9ecef;
        }

        table {
            width: 100%;
            border-collapse: collapse;
            margin-bottom: 20px;
        }

        th {
            background: #f8f9fa;
            padding: 12px;
            text-align: left;
            font-weight: 600;
            color: #495057;
            border-bottom: 2px solid #dee2e6;
        }

        td {
            padding: 12px;
            border-bottom: 1px solid #e9ecef;
        }

        tr:hover {
            background: #f8f9fa;
        }

        .param-name {
            font-family: 'Courier New', monospace;
            color: #667eea;
            font-weight: 600;
        }

        .param-type {
            font-family: 'Courier New', monospace;
            color: #e83e8c;
        }

        .param-in {
            display: inline-block;
            padding: 2px 8px;
            background: #e7f3ff;
            color: #0066cc;
            border-radius: 3px;
            font-size: 0.85em;
            font-weight: 500;
        }




        footer {
            text-align: center;
            padding: 30px 20px;
            color: #6c757d;
            margin-top: 40px;
        }

        .no-endpoints {
            text-align: center;
            padding: 60px 20px;
            color: #6c757d;
        }
        
        .folder-title {
            font-size: 1.4em;
            color: #764ba2;
            margin: 30px 0 15px;
            padding-bottom: 6px;
            border-bottom: 2px solid #e9ecef;
        }

        pre.body-sample {
            background: #2d2d2d;
            color: #f8f8f2;
            padding: 15px;
            border-radius: 6px;
            overflow-x: auto;
            font-size: 0.9em;
        }

        .auth-none {
            color: #6c757d;
            font-style: italic;
        }
    </style>
</head>
<body>
    <div class="container">
        <header>
            <h1>📘 {{.Name}}</h1>
            <p>{{.Description}}</p>
            <p>Generated on {{.GeneratedAt}}</p>
        </header>

        <div class="summary">
            <h2>Overview</h2>
            <div class="stats">
                <div class="stat-card">
                    <div class="label">Total Requests</div>
                    <div class="value">{{.TotalRequests}}</div>
                </div>
                <div class="stat-card">
                    <div class="label">Folders</div>
                    <div class="value">{{.TotalFolders}}</div>
                </div>
                <div class="stat-card">
                    <div class="label">Collection Auth</div>
                    <div class="value">{{.AuthType}}</div>
                </div>
            </div>
        </div>

        {{if .Groups}}
            {{range .Groups}}
            <h2 class="folder-title">{{.Folder}}</h2>
            {{range .Requests}}
            <div class="endpoint">
                <div class="endpoint-header">
                    <div class="endpoint-title">
                        <span class="method-badge {{methodColor .Method}}">{{methodBadge .Method}}</span>
                        <span class="endpoint-path">{{.URL}}</span>
                    </div>
                    <div class="endpoint-meta">
                        Request: <strong>{{.Name}}</strong> · Auth:
                        {{if eq .Auth "noauth"}}<span class="auth-none">none</span>{{else}}<strong>{{.Auth}}</strong>{{end}}
                    </div>
                </div>

                <div class="endpoint-body">
                    {{if .Headers}}
                    <div class="section-title">Headers</div>
                    <table>
                        <thead>
                            <tr>
                                <th>Key</th>
                                <th>Value</th>
                            </tr>
                        </thead>
                        <tbody>
                            {{range .Headers}}
                            <tr>
                                <td class="param-name">{{.Key}}</td>
                                <td class="param-type">{{.Value}}</td>
                            </tr>
                            {{end}}
                        </tbody>
                    </table>
                    {{end}}

                    {{if .FormData}}
                    <div class="section-title">Body <span class="param-in">formdata</span></div>
                    <table>
                        <thead>
                            <tr>
                                <th>Key</th>
                                <th>Sample Value</th>
                            </tr>
                        </thead>
                        <tbody>
                            {{range .FormData}}
                            <tr>
                                <td class="param-name">{{.Key}}</td>
                                <td class="param-type">{{.Value}}</td>
                            </tr>
                            {{end}}
                        </tbody>
                    </table>
                    {{else if .RawBody}}
                    <div class="section-title">Body <span class="param-in">raw</span></div>
                    <pre class="body-sample">{{.RawBody}}</pre>
                    {{end}}
                </div>
            </div>
            {{end}}
            {{end}}
        {{else}}
            <div class="no-endpoints">
                <h3>No requests found</h3>
                <p>Check the route prefix and include/exclude filters in your configuration.</p>
            </div>
        {{end}}

        <footer>
            <p>Generated by <strong>Route Postman</strong></p>
            <p>Postman collections from declared routes</p>
        </footer>
    </div>
</body>
</html>
`
